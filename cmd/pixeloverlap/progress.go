package main

import (
	"log"
	"math"
	"sync"

	"github.com/carbocation/runningvariance"
	"github.com/carbocation/segoverlap/overlap"
)

// progress keeps running statistics of the comparisons made so far, for
// logging.
type progress struct {
	m         sync.Mutex
	compared  int
	fFactor   *runningvariance.RunningStat
	randIndex *runningvariance.RunningStat
}

func newProgress() *progress {
	return &progress{
		fFactor:   runningvariance.NewRunningStat(),
		randIndex: runningvariance.NewRunningStat(),
	}
}

func (p *progress) Push(m overlap.Metrics) {
	p.m.Lock()
	defer p.m.Unlock()

	p.compared++

	if isFinite(m.FFactor) {
		p.fFactor.Push(m.FFactor)
	}
	if isFinite(m.RandIndex) {
		p.randIndex.Push(m.RandIndex)
	}
}

func (p *progress) Compared() int {
	p.m.Lock()
	defer p.m.Unlock()

	return p.compared
}

func (p *progress) Log() {
	p.m.Lock()
	defer p.m.Unlock()

	if p.compared == 0 {
		log.Println("No comparisons completed yet")
		return
	}

	log.Printf("Completed %d comparisons. FFactor mean %.3f (SD %.3f). RandIndex mean %.3f (SD %.3f).\n",
		p.compared,
		p.fFactor.Mean(), p.fFactor.StandardDeviation(),
		p.randIndex.Mean(), p.randIndex.StandardDeviation())
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
