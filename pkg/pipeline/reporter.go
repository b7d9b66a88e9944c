package pipeline

import "shotpair/pkg/models"

// Reporter receives progress events from a run. Calls are made from the
// goroutine running Pipeline.Run.
type Reporter interface {
	RunStarted(total, padding int)
	PairStarted(pair models.PagePair, fileName string)
	PairSkipped(pair models.PagePair, fileName string)
	PairDone(pair models.PagePair, rec models.OutputRecord, failedCaptures int)
	PairAborted(pair models.PagePair, err error)
	RunFinished(summary *models.Summary)
}

// NopReporter ignores all events
type NopReporter struct{}

func (NopReporter) RunStarted(int, int)                                {}
func (NopReporter) PairStarted(models.PagePair, string)                {}
func (NopReporter) PairSkipped(models.PagePair, string)                {}
func (NopReporter) PairDone(models.PagePair, models.OutputRecord, int) {}
func (NopReporter) PairAborted(models.PagePair, error)                 {}
func (NopReporter) RunFinished(*models.Summary)                        {}
