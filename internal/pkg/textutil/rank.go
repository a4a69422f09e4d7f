package textutil

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more letters, digits or underscores in
// any script.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// tieEpsilon absorbs rounding so that mathematically equal scores keep the
// earliest chunk.
const tieEpsilon = 1e-12

// Tokenize lowercases text and returns its terms.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// sparseVec is a tf-idf row with term indexes in ascending order.
type sparseVec struct {
	idx []int
	w   []float64
}

// Rank returns the corpus chunk most similar to question together with its
// cosine score, or "" and 0 when the corpus is empty.
//
// The vocabulary and document frequencies are built from the corpus plus the
// question, with smoothed idf ln((1+n)/(1+df))+1 and L2-normalized rows.
// Ties go to the earliest chunk.
func Rank(question string, corpus []string) (string, float64) {
	if len(corpus) == 0 {
		return "", 0
	}

	docs := make([][]string, 0, len(corpus)+1)
	for _, c := range corpus {
		docs = append(docs, Tokenize(c))
	}
	docs = append(docs, Tokenize(question))

	df := make(map[string]int)
	for _, terms := range docs {
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	// 词表按字典序编号，保证每次累加顺序一致
	vocab := make([]string, 0, len(df))
	for t := range df {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)
	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, t := range vocab {
		index[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]sparseVec, len(docs))
	for i, terms := range docs {
		vectors[i] = weigh(terms, index, idf)
	}

	q := vectors[len(vectors)-1]
	best, bestScore := 0, math.Inf(-1)
	for i := 0; i < len(corpus); i++ {
		score := dot(q, vectors[i])
		if score > bestScore+tieEpsilon {
			best, bestScore = i, score
		}
	}
	return corpus[best], bestScore
}

// weigh builds an L2-normalized tf-idf row.
func weigh(terms []string, index map[string]int, idf []float64) sparseVec {
	counts := make(map[int]float64, len(terms))
	for _, t := range terms {
		counts[index[t]]++
	}
	v := sparseVec{idx: make([]int, 0, len(counts))}
	for i := range counts {
		v.idx = append(v.idx, i)
	}
	sort.Ints(v.idx)

	v.w = make([]float64, len(v.idx))
	var norm float64
	for k, i := range v.idx {
		w := counts[i] * idf[i]
		v.w[k] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for k := range v.w {
		v.w[k] /= norm
	}
	return v
}

// dot merges two sorted rows.
func dot(a, b sparseVec) float64 {
	var s float64
	for i, j := 0, 0; i < len(a.idx) && j < len(b.idx); {
		switch {
		case a.idx[i] < b.idx[j]:
			i++
		case a.idx[i] > b.idx[j]:
			j++
		default:
			s += a.w[i] * b.w[j]
			i++
			j++
		}
	}
	return s
}
