// Package autouse decides when a query should be answered with cached
// Context7 documentation and performs the response enhancement.
package autouse

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// ErrorCode defines error types for autouse operations
type ErrorCode string

const (
	ErrRulesParse ErrorCode = "RulesParse"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// RulesFileName is the automatic-use rules file name
const RulesFileName = "auto_context7.json"

// Rules controls automatic documentation enhancement
type Rules struct {
	// Enabled switches automatic use on or off entirely
	Enabled bool `json:"enabled"`

	// Keywords are lowercase triggers matched against incoming queries
	Keywords []string `json:"keywords"`

	// AutoEnhance appends documentation excerpts to matched responses
	AutoEnhance bool `json:"auto_enhance"`

	// CheckVersions includes tracked library versions in enhancements
	CheckVersions bool `json:"check_versions"`
}

// rulesFile is the on-disk layout
type rulesFile struct {
	AutoContext7 Rules     `json:"auto_context7"`
	LastSetup    time.Time `json:"last_setup"`
}

// DefaultRules builds enabled rules around the given keywords
func DefaultRules(keywords []string) Rules {
	return Rules{
		Enabled:       true,
		Keywords:      lo.Uniq(keywords),
		AutoEnhance:   true,
		CheckVersions: true,
	}
}

// DefaultPath returns the rules file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", failure.Wrap(err)
	}
	return filepath.Join(dir, "c7ctl", RulesFileName), nil
}

// LoadRules reads the rules file. A missing file yields disabled rules.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Rules{}, nil
		}
		return Rules{}, failure.Wrap(err, failure.Context{"path": path})
	}

	var f rulesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Rules{}, failure.New(ErrRulesParse,
			failure.Message("Automatic-use rules file is not valid JSON, run setup again"),
			failure.Context{"path": path, "cause": err.Error()},
		)
	}
	return f.AutoContext7, nil
}

// SaveRules persists the rules, recording the setup time
func SaveRules(path string, rules Rules) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return failure.Wrap(err, failure.Context{"path": path})
	}

	data, err := json.MarshalIndent(rulesFile{
		AutoContext7: rules,
		LastSetup:    time.Now(),
	}, "", "  ")
	if err != nil {
		return failure.Wrap(err)
	}

	return failure.Wrap(os.WriteFile(path, data, 0644), failure.Context{"path": path})
}
