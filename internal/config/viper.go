// Package config provides Viper-backed access to derbytally configuration:
// the standard class vocabulary and the scoring policy defaults.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/errors"
	"github.com/packleader/derbytally/pkg/ranking"
)

// Configuration keys.
const (
	KeyClasses     = "classes"
	KeyFinalsClass = "finals_class"
	KeyMethod      = "method"
	KeyFieldSize   = "finals_field_size"
	KeyWinnerCount = "finals_winner_count"
	KeyExclusion   = "winner_exclusion"
)

// SetDefaults registers the scoring policy defaults with Viper.
func SetDefaults() {
	viper.SetDefault(KeyMethod, ranking.MethodDropSlowest.String())
	viper.SetDefault(KeyFieldSize, ranking.DefaultFieldSize)
	viper.SetDefault(KeyWinnerCount, ranking.DefaultWinnerCount)
	viper.SetDefault(KeyExclusion, true)
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// ClassSet builds the standard class set from configuration, falling back to
// the default seven-tier ladder when no override is configured. An override
// must name its finals class as one of its members.
func ClassSet() (classes.Set, error) {
	raw := viper.GetStringSlice(KeyClasses)
	if len(raw) == 0 {
		return classes.DefaultSet(), nil
	}

	names := make([]classes.Name, 0, len(raw))
	for _, s := range raw {
		names = append(names, classes.Name(s))
	}

	finals := classes.Name(viper.GetString(KeyFinalsClass))
	if finals == "" {
		// The last configured class is the finals tier.
		finals = names[len(names)-1]
	} else {
		found := false
		for _, n := range names {
			if n == finals {
				found = true
				break
			}
		}
		if !found {
			return classes.Set{}, errors.NewConfigError(KeyFinalsClass,
				"finals class "+finals.String()+" is not in the configured class list", nil)
		}
	}
	return classes.NewSet(names, finals), nil
}

// Method returns the configured scoring method.
func Method() (ranking.Method, error) {
	return ranking.ParseMethod(viper.GetString(KeyMethod))
}
