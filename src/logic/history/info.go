package history

import (
	"time"

	"blockblast/src/base"
)

type InfoHeader string

const (
	InfoHeaderMode    InfoHeader = "Mode"
	InfoHeaderStarted InfoHeader = "Started"
	InfoHeaderSeed    InfoHeader = "Seed"
	InfoHeaderResult  InfoHeader = "Result"
)

type InfoGame struct {
	headers map[InfoHeader]string
}

func NewInfoGame() *InfoGame {
	return &InfoGame{headers: make(map[InfoHeader]string)}
}

// mode
func (i *InfoGame) SetMode(m base.GameMode) { i.headers[InfoHeaderMode] = m.String() }
func (i *InfoGame) GetMode() string         { return i.headers[InfoHeaderMode] }

// started
func (i *InfoGame) SetStarted(t time.Time) { i.headers[InfoHeaderStarted] = t.Format(time.RFC3339) }
func (i *InfoGame) GetStarted() string     { return i.headers[InfoHeaderStarted] }

// seed
func (i *InfoGame) SetSeed(s string) { i.headers[InfoHeaderSeed] = s }
func (i *InfoGame) GetSeed() string  { return i.headers[InfoHeaderSeed] }

// result
func (i *InfoGame) SetResult(r string) { i.headers[InfoHeaderResult] = r }
func (i *InfoGame) GetResult() string  { return i.headers[InfoHeaderResult] }

// Headers returns a copy of every set header.
func (i *InfoGame) Headers() map[InfoHeader]string {
	out := make(map[InfoHeader]string, len(i.headers))
	for k, v := range i.headers {
		out[k] = v
	}
	return out
}
