package middleware

import "github.com/kart-io/wizora/pkg/options"

// joinFlag builds "<prefix>middleware.<name>.<field>".
func joinFlag(prefixes []string, name, field string) string {
	return options.Join(prefixes...) + "middleware." + name + "." + field
}
