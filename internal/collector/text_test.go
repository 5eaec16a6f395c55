//go:build !testsignal

package collector_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanhngo/linkhound/internal/collector"
)

const sampleText = `A plain text document with a link to http://google.com and
another one to https://www.google.com in the same paragraph.

https://google.com/?q=long+text+1 https://bing.com/?q=long+text+2
http://127.0.0.1:8888/path
nothing on this line
https://ran-dom.com/`

func TestTextLinkCollector_Collect_Error(t *testing.T) {
	t.Parallel()

	c := collector.NewTextLinkCollector()

	actual, err := c.Collect(newErrorReader(errors.New("random error")))

	assert.EqualError(t, err, "could not collect links from text doc: random error")
	assert.Equal(t, collector.Document{}, actual)
}

func TestTextLinkCollector_Collect_Success(t *testing.T) {
	t.Parallel()

	c := collector.NewTextLinkCollector()

	actual, err := c.Collect(strings.NewReader(sampleText))
	require.NoError(t, err, "could not collect links")

	expected := collector.Document{
		Hrefs: []string{
			"http://google.com",
			"https://www.google.com",
			"https://google.com/?q=long+text+1",
			"https://bing.com/?q=long+text+2",
			"http://127.0.0.1:8888/path",
			"https://ran-dom.com/",
		},
	}

	assert.Equal(t, expected, actual)
}
