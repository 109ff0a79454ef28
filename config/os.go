package config

import "os"

// colorDisabled follows https://no-color.org convention.
func colorDisabled() bool {
	v, ok := os.LookupEnv("NO_COLOR")
	return ok && v != ""
}
