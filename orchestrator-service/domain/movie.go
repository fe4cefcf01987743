package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type Genre string

const (
	GenreAction      Genre = "ACTION"
	GenreComedy      Genre = "COMEDY"
	GenreDrama       Genre = "DRAMA"
	GenreHorror      Genre = "HORROR"
	GenreRomance     Genre = "ROMANCE"
	GenreSciFi       Genre = "SCIFI"
	GenreThriller    Genre = "THRILLER"
	GenreDocumentary Genre = "DOCUMENTARY"
	GenreAnimation   Genre = "ANIMATION"
	GenreFantasy     Genre = "FANTASY"
)

var allGenres = map[string]Genre{
	GenreAction.String():      GenreAction,
	GenreComedy.String():      GenreComedy,
	GenreDrama.String():       GenreDrama,
	GenreHorror.String():      GenreHorror,
	GenreRomance.String():     GenreRomance,
	GenreSciFi.String():       GenreSciFi,
	GenreThriller.String():    GenreThriller,
	GenreDocumentary.String(): GenreDocumentary,
	GenreAnimation.String():   GenreAnimation,
	GenreFantasy.String():     GenreFantasy,
}

func NewGenre(value string) (Genre, error) {
	if g, ok := allGenres[value]; ok {
		return g, nil
	}
	return "", fmt.Errorf("unknown genre: %s", value)
}

func (g Genre) String() string {
	return string(g)
}

// Timestamp is written as RFC 3339. It also reads epoch milliseconds, which is
// how the seating and movie services serialize dates.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp must be RFC 3339 or epoch millis: %s", b)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// Equal compares instants, ignoring location
func (t Timestamp) Equal(other Timestamp) bool {
	return t.Time.Equal(other.Time)
}

type Movie struct {
	MovieName string    `json:"movieName"`
	Showtime  Timestamp `json:"showtime"`
	Genre     Genre     `json:"genre"`
}
