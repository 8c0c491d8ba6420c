package main

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"seqscope/internal/common"
	"seqscope/internal/writer"

	"go.uber.org/zap"
)

var organisms = []string{
	"human", "mouse", "rat", "zebrafish", "fruitfly", "worm", "yeast",
	"arabidopsis", "maize", "rice", "ecoli", "bsubtilis", "chicken", "cow",
}

const (
	minSeedLen = 50
	maxSeedLen = 400
)

// seed writes x synthetic DNA records per organism to path, truncating it.
func (s *shell) seed(path string, x int) {
	start := time.Now()

	fw, err := writer.Create(path, s.width)
	if err != nil {
		fmt.Fprintf(s.out, "seed error: %v\n", err)
		return
	}

	// Randomize the order of organisms for a less regular file
	shuffled := make([]string, len(organisms))
	copy(shuffled, organisms)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for i := 0; i < x; i++ {
		for _, name := range shuffled {
			n := minSeedLen + rand.IntN(maxSeedLen-minSeedLen)
			rec := common.Record{
				ID:          fmt.Sprintf("%s%d", name, i),
				Description: fmt.Sprintf("synthetic %dbp", n),
				Sequence:    randomDNA(n),
			}
			if err := fw.Write(rec); err != nil {
				fmt.Fprintf(s.out, "seed error: %v\n", err)
				fw.Close()
				return
			}
		}
	}
	if err := fw.Close(); err != nil {
		fmt.Fprintf(s.out, "seed error: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "seeded %d records (%d * %d) -> %s\n", fw.Len(), len(organisms), x, path)
	common.LogDuration(start, "seeded records", zap.String("path", path), zap.Int("records", fw.Len()))
}

func randomDNA(n int) string {
	const bases = "ACGT"
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(bases[rand.IntN(len(bases))])
	}
	return b.String()
}
