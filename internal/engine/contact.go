package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/pillar"
)

// Profile is a birth record read from an address book.
type Profile struct {
	// UID is a deterministic hash of the name and birth instant.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	Birth Birth
}

type readStats struct{ processed, skipped int }

// sourceReader remembers the last read failure of the underlying stream, so
// that I/O errors can be told apart from malformed cards.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}
	return n, err
}

// ReadProfiles decodes a vCard stream and keeps the contacts that carry a full
// birth date and a gender. A BDAY with a time of day marks the time as known.
// Malformed cards are logged and skipped. Cancellation and read failures of r
// abort the read.
func ReadProfiles(ctx context.Context, r io.Reader) ([]Profile, error) {
	src := &sourceReader{r: r}
	decoder := vcard.NewDecoder(src)
	var stats readStats
	var profiles []Profile

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if src.err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, src.err)
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyError, err)
			if errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			stats.skipped++
			continue
		}
		stats.processed++

		name := cardName(card)
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			stats.skipped++
			continue
		}

		at, timeKnown, err := parseDate(bday.Value)
		if err != nil || at.Year() < config.MinBirthYear || at.Year() > config.MaxBirthYear {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyName, name,
				config.LogKeyValue, bday.Value)
			stats.skipped++
			continue
		}

		gender, ok := cardGender(card)
		if !ok {
			slog.Debug(config.MsgSkippedGender,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyName, name)
			stats.skipped++
			continue
		}

		profiles = append(profiles, Profile{
			UID:  profileUID(name, at),
			Name: name,
			Birth: Birth{
				At:           at,
				TimeKnown:    timeKnown,
				Gender:       gender,
				CalendarType: config.CalendarSolar,
				Name:         name,
			},
		})
	}

	logRead(stats, len(profiles))
	return profiles, nil
}

// cardName applies FN > N > fallback.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		return strings.TrimSpace(fn.Value)
	}
	if n := card.Get(config.VCardN); n != nil && strings.Trim(n.Value, "; ") != "" {
		return strings.Join(strings.FieldsFunc(n.Value, func(r rune) bool { return r == ';' }), " ")
	}
	return config.FallbackName
}

// cardGender reads GENDER. The sex component wins; free-text identity is a
// second chance for address books that write "남" or "여" there.
func cardGender(card vcard.Card) (pillar.Gender, bool) {
	sex, identity := card.Gender()
	switch sex {
	case vcard.SexMale:
		return pillar.Male, true
	case vcard.SexFemale:
		return pillar.Female, true
	}
	if g, err := ParseGender(identity); err == nil {
		return g, true
	}
	return pillar.Male, false
}

func profileUID(name string, at time.Time) string {
	input := fmt.Sprintf(config.FormatProfileHash, name, at.Format(config.DateFormatFullT), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// parseDate handles the vCard date forms that carry a year. The second result
// reports whether a time of day was present. Zones are dropped: the wall clock
// as written is the civil birth time.
func parseDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)

	for _, f := range []string{config.DateFormatFullDash, config.DateFormatFullBasic} {
		if t, err := time.Parse(f, value); err == nil {
			return t, false, nil
		}
	}

	for _, f := range []string{config.DateFormatRFC3339, config.DateFormatFullT, config.DateFormatBasicT} {
		if t, err := time.Parse(f, value); err == nil {
			civil := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
			return civil, true, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}

func logRead(stats readStats, usable int) {
	slog.Info(config.MsgBatchRead,
		config.LogKeyComponent, config.CompContacts,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, usable),
			slog.Int(config.LogKeySkipped, stats.skipped),
		),
	)
}
