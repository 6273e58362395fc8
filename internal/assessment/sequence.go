// Package assessment orders a section's questions and teaching prompts
// into a single pass.
package assessment

import (
	"math/rand/v2"

	"github.com/abhisek/lumen/internal/content"
)

// Item is one assessment step: exactly one of Question or Prompt is set.
type Item struct {
	Question *content.Question
	Prompt   *content.TeachingPrompt
}

// IsPrompt reports whether the item is a teaching prompt.
func (it Item) IsPrompt() bool { return it.Prompt != nil }

// RelatedSlide returns the slide index the item refers to.
func (it Item) RelatedSlide() int {
	if it.Prompt != nil {
		return it.Prompt.RelatedSlide
	}
	if it.Question != nil {
		return it.Question.RelatedSlide
	}
	return -1
}

// Text returns the question or prompt text.
func (it Item) Text() string {
	if it.Prompt != nil {
		return it.Prompt.Text
	}
	if it.Question != nil {
		return it.Question.Text
	}
	return ""
}

// Buckets holds items partitioned by kind, each already in final order.
type Buckets struct {
	MultipleChoice []Item
	FillBlank      []Item
	Math           []Item
	Teaching       []Item
}

// Len returns the total number of items.
func (b Buckets) Len() int {
	return len(b.MultipleChoice) + len(b.FillBlank) + len(b.Math) + len(b.Teaching)
}

// Shuffler permutes a bucket in place.
type Shuffler func(items []Item)

// RandomShuffle is a uniform Fisher-Yates shuffle.
func RandomShuffle(items []Item) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Partition sorts prompts and questions into buckets, keeping input order.
// Questions of an unknown kind are treated as multiple choice.
func Partition(prompts []content.TeachingPrompt, questions []content.Question) Buckets {
	var b Buckets
	for i := range questions {
		it := Item{Question: &questions[i]}
		switch questions[i].Kind {
		case content.KindFillBlank:
			b.FillBlank = append(b.FillBlank, it)
		case content.KindMath:
			b.Math = append(b.Math, it)
		default:
			b.MultipleChoice = append(b.MultipleChoice, it)
		}
	}
	for i := range prompts {
		b.Teaching = append(b.Teaching, Item{Prompt: &prompts[i]})
	}
	return b
}

// Sequence partitions, shuffles each bucket independently and interleaves
// the result. A nil shuffle uses RandomShuffle.
func Sequence(prompts []content.TeachingPrompt, questions []content.Question, shuffle Shuffler) []Item {
	if shuffle == nil {
		shuffle = RandomShuffle
	}
	b := Partition(prompts, questions)
	shuffle(b.MultipleChoice)
	shuffle(b.FillBlank)
	shuffle(b.Math)
	shuffle(b.Teaching)
	return Interleave(b)
}

// Interleave emits rounds of MC, MATH, MC, FIB, TAT, skipping empty
// buckets, until every bucket is drained. The output is fully determined
// by the bucket contents.
func Interleave(b Buckets) []Item {
	out := make([]Item, 0, b.Len())
	queues := [...]*[]Item{&b.MultipleChoice, &b.Math, &b.MultipleChoice, &b.FillBlank, &b.Teaching}

	for len(out) < cap(out) {
		for _, q := range queues {
			if len(*q) == 0 {
				continue
			}
			out = append(out, (*q)[0])
			*q = (*q)[1:]
		}
	}
	return out
}
