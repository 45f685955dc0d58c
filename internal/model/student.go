package model

import (
	"fmt"
	"sort"
)

// Score keys accepted by the score sheet.
const (
	ScoreTX1 = "diemTX1"
	ScoreTX2 = "diemTX2"
	ScoreTX3 = "diemTX3"
	ScoreTX4 = "diemTX4"
	ScoreGK  = "diemGK"
	ScoreCK  = "diemCK"
)

// ScoreKeys lists every assessment in display order.
var ScoreKeys = []string{ScoreTX1, ScoreTX2, ScoreTX3, ScoreTX4, ScoreGK, ScoreCK}

// Student is one student's identity and score sheet.
type Student struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Scores Scores `json:"scores"`
}

// Clone returns a copy that shares no score pointers with s.
func (s Student) Clone() Student {
	s.Scores = s.Scores.Clone()
	return s
}

// Scores holds the optional mark for each assessment. A nil field is unset
// and is persisted as JSON null, which is distinct from a zero mark.
type Scores struct {
	TX1 *float64 `json:"diemTX1"`
	TX2 *float64 `json:"diemTX2"`
	TX3 *float64 `json:"diemTX3"`
	TX4 *float64 `json:"diemTX4"`
	GK  *float64 `json:"diemGK"`
	CK  *float64 `json:"diemCK"`
}

// ScoresPatch carries a partial score update. Keys missing from the patch
// keep their previous value; a key mapped to nil clears that score.
type ScoresPatch map[string]*float64

// Validate rejects keys outside the fixed assessment set.
func (p ScoresPatch) Validate() error {
	var unknown []string
	for key := range p {
		if !isScoreKey(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %v", ErrInvalidScoreKey, unknown)
	}
	return nil
}

// Apply merges the patch over s field by field.
func (s *Scores) Apply(patch ScoresPatch) {
	for key, value := range patch {
		if field := s.field(key); field != nil {
			*field = copyScore(value)
		}
	}
}

// Clone returns a deep copy of the score sheet.
func (s Scores) Clone() Scores {
	return Scores{
		TX1: copyScore(s.TX1),
		TX2: copyScore(s.TX2),
		TX3: copyScore(s.TX3),
		TX4: copyScore(s.TX4),
		GK:  copyScore(s.GK),
		CK:  copyScore(s.CK),
	}
}

func (s *Scores) field(key string) **float64 {
	switch key {
	case ScoreTX1:
		return &s.TX1
	case ScoreTX2:
		return &s.TX2
	case ScoreTX3:
		return &s.TX3
	case ScoreTX4:
		return &s.TX4
	case ScoreGK:
		return &s.GK
	case ScoreCK:
		return &s.CK
	default:
		return nil
	}
}

func isScoreKey(key string) bool {
	for _, k := range ScoreKeys {
		if k == key {
			return true
		}
	}
	return false
}

func copyScore(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
