package media

import (
	"log"
	"strconv"
	"strings"
)

// progressLogger consumes ffmpeg's -progress key=value stream and logs
// a percentage every 10% step. Pure observability; errors here are
// impossible and progress never affects the run.
type progressLogger struct {
	label      string
	totalSec   float64
	buf        string
	lastLogged int
}

// lastLogged starts at 0 so the first line fires at 10%, not on the
// first sample.
func newProgressLogger(label string, totalSec float64) *progressLogger {
	return &progressLogger{label: label, totalSec: totalSec}
}

func (p *progressLogger) Write(b []byte) (int, error) {
	p.buf += string(b)
	for {
		i := strings.IndexByte(p.buf, '\n')
		if i < 0 {
			break
		}
		line := p.buf[:i]
		p.buf = p.buf[i+1:]
		if sec, ok := parseOutTime(line); ok {
			p.logPercent(sec)
		}
	}
	return len(b), nil
}

func (p *progressLogger) logPercent(sec float64) {
	if p.totalSec <= 0 {
		return
	}
	percent := int(sec / p.totalSec * 100)
	if percent > 100 {
		percent = 100
	}
	if percent >= p.lastLogged+10 {
		p.lastLogged = percent - percent%10
		log.Printf("[%s] progress: %d%%", p.label, p.lastLogged)
	}
}

// parseOutTime extracts elapsed output time in seconds from one line of
// ffmpeg -progress output. Both out_time_us and out_time_ms carry
// microseconds.
func parseOutTime(line string) (float64, bool) {
	for _, key := range []string{"out_time_us=", "out_time_ms="} {
		if v, ok := strings.CutPrefix(line, key); ok {
			us, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil || us < 0 {
				return 0, false
			}
			return float64(us) / 1e6, true
		}
	}
	return 0, false
}
