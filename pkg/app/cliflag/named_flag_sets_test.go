package cliflag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagSetKeepsOrder(t *testing.T) {
	var fss NamedFlagSets
	fss.FlagSet("http").String("http.addr", ":8000", "listen address")
	fss.FlagSet("log").String("log.level", "INFO", "log level")
	fss.FlagSet("http").Duration("http.read-timeout", 0, "read timeout")

	assert.Equal(t, []string{"http", "log"}, fss.Order)
	assert.NotNil(t, fss.FlagSets["http"].Lookup("http.read-timeout"))

	var buf bytes.Buffer
	PrintSections(&buf, fss, 0)
	assert.Contains(t, buf.String(), "Http flags:")
	assert.Contains(t, buf.String(), "--log.level")
}
