package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// resolveLegacyFlag merges a deprecated string flag into its replacement. It returns the
// value to use and whether it came from the legacy flag. Setting both flags to different
// values is an error.
func resolveLegacyFlag(cmd *cobra.Command, modern, legacy string) (string, bool, error) {
	modernValue, _ := cmd.Flags().GetString(modern)
	legacyValue, _ := cmd.Flags().GetString(legacy)
	modernSet := cmd.Flags().Changed(modern)
	legacySet := cmd.Flags().Changed(legacy)

	switch {
	case modernSet && legacySet && modernValue != legacyValue:
		return "", false, fmt.Errorf("--%s and --%s are mutually exclusive, use --%s", modern, legacy, modern)
	case legacySet && !modernSet:
		return legacyValue, true, nil
	default:
		return modernValue, false, nil
	}
}

type filterArg struct {
	name   string
	values []string
}

// parseFilters parses repeated NAME=VALUE[,VALUE...] arguments.
func parseFilters(args []string) ([]filterArg, error) {
	filters := make([]filterArg, 0, len(args))
	for _, arg := range args {
		name, values, ok := strings.Cut(arg, "=")
		if !ok || name == "" || values == "" {
			return nil, fmt.Errorf("invalid filter %q, expected NAME=VALUE[,VALUE...]", arg)
		}
		filters = append(filters, filterArg{name: name, values: splitValues(values)})
	}
	return filters, nil
}

// parseTagFilters parses repeated KEY[=VALUE[,VALUE...]] arguments. A bare key matches
// any value.
func parseTagFilters(args []string) ([]filterArg, error) {
	filters := make([]filterArg, 0, len(args))
	for _, arg := range args {
		key, values, _ := strings.Cut(arg, "=")
		if key == "" {
			return nil, fmt.Errorf("invalid tag filter %q, expected KEY[=VALUE[,VALUE...]]", arg)
		}
		filters = append(filters, filterArg{name: key, values: splitValues(values)})
	}
	return filters, nil
}

func splitValues(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
