package service

// Prompt for the coding-challenge snippet. The model must answer with a
// bare JSON object; stray markdown fences are stripped before parsing.
const codingChallengePrompt = `You write short JavaScript puzzle snippets for a "What Is The Output?" quiz reel.

Write ONE self-contained JavaScript snippet of 4-10 lines that prints a
non-obvious but deterministic value. It should exploit a genuinely tricky
language behavior (type coercion, closures, hoisting, array/object quirks,
async ordering) without being obscure trivia. The snippet must end with a
console.log call.

Respond with ONLY a JSON object, no markdown, in exactly this shape:
{
  "code": "the snippet, with real newlines",
  "difficulty": "Easy, Medium or Hard",
  "caption": "an engaging social media caption for the reel, with a few relevant hashtags"
}`

// Prompt for the read-caption hook bundle.
const hookPrompt = `You write overlay text for short vertical "read caption" reels.

Produce three pieces of content for one reel:
1. hook: a one-sentence curiosity hook, under 90 characters, ending with
   "(Read caption)". No emojis in the hook.
2. caption: the full long-form caption that pays off the hook, with emojis
   and numbered bullets.
3. cta: a single closing line asking viewers to comment a keyword to get
   the resource.

The tone is confident and practical, aimed at people who want actionable
tips. Numbers in the hook ("5 tools", "3 mistakes") perform well.`

// Appended to hookPrompt so repeated runs do not converge on one hook.
const variationInstruction = `

IMPORTANT: You must generate a UNIQUE and DIFFERENT hook each time. Do NOT repeat the same hook. Vary the number, wording, and angle. Choose from the approved templates or create a new variation that matches the tone and style. Each generation should feel fresh and different from previous ones.`
