package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/skyflight/internal/games/flight"
	"github.com/vovakirdan/skyflight/internal/loop"
	"github.com/vovakirdan/skyflight/internal/storage"
)

func TestPrintSummaries(t *testing.T) {
	tests := []struct {
		name      string
		summaries []loop.RoundSummary
		want      []string
	}{
		{
			name: "no rounds",
			want: []string{"No rounds finished."},
		},
		{
			name: "two rounds",
			summaries: []loop.RoundSummary{
				{Round: 1, Result: flight.Result{Score: 4, Reason: flight.EndCollision, Ticks: 300}, Outcome: storage.Outcome{Score: 4, Best: 4, NewRecord: true}},
				{Round: 2, Result: flight.Result{Score: 2, Reason: flight.EndOutOfBounds, Ticks: 150}, Outcome: storage.Outcome{Score: 2, Best: 4}},
			},
			want: []string{"4 (new)", "Average score: 3.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printSummaries(&buf, tt.summaries)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}
