package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"shotpair/pkg/models"
)

func init() {
	color.NoColor = true
}

func TestConsoleReporterNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	pair := models.PagePair{Index: 2, LeftPath: "contact", RightPath: "contact-us"}
	r.RunStarted(12, 3)
	r.PairSkipped(models.PagePair{Index: 1, LeftPath: "about"}, "001-about.png")
	r.PairStarted(pair, "002-contact.png")
	r.PairDone(pair, models.OutputRecord{OutputFileName: "002-contact.png", LeftStatus: 200, RightStatus: 404}, 0)
	r.PairAborted(models.PagePair{Index: 3}, errors.New("disk full"))
	r.RunFinished(&models.Summary{Total: 12, Processed: 1, Skipped: 1, FailedCaptures: 0, Duration: 3 * time.Second})

	out := buf.String()
	assert.Contains(t, out, "[INPUT] 12 pairs")
	assert.Contains(t, out, "[SKIP] 001/12 001-about.png")
	assert.Contains(t, out, "[DONE] 002/12 002-contact.png left 200 right 404")
	assert.Contains(t, out, "[ABORTED] 003/12 disk full")
	assert.Contains(t, out, "processed 1, skipped 1, failed captures 0, in 3s")
	assert.Contains(t, out, "10 pairs left")
}

func TestConsoleReporterPartial(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.RunStarted(1, 3)
	r.PairDone(models.PagePair{Index: 1}, models.OutputRecord{OutputFileName: "001-a.png", LeftStatus: 200, RightStatus: 500}, 1)

	assert.Contains(t, buf.String(), "[PARTIAL] 001/1 001-a.png")
}

type recordingSender struct {
	titles []string
}

func (s *recordingSender) Send(title, message string) error {
	s.titles = append(s.titles, title)
	return errors.New("no notification daemon")
}

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	prev := Output
	Output = &buf
	defer func() { Output = prev }()

	sender := &recordingSender{}
	n := NewNotifierWithSender(sender)
	n.SendSuccess("shotpair", "3 pairs captured")
	n.SendError("shotpair", "run aborted")

	assert.Equal(t, []string{"shotpair", "shotpair"}, sender.titles)
	assert.Contains(t, buf.String(), "3 pairs captured")
	assert.Contains(t, buf.String(), "run aborted")

	NewNotifierWithSender(nil).SendSuccess("t", "console only")
	assert.Contains(t, buf.String(), "console only")
}
