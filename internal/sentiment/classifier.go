package sentiment

// Category is the sentiment bucket a single review falls into.
type Category string

const (
	Positive Category = "positive"
	Neutral  Category = "neutral"
	Negative Category = "negative"
)

const (
	positiveFloor = 4.0
	neutralFloor  = 3.0
)

// Classify buckets a rating. Both floors are inclusive. NaN fails every
// comparison and lands in Negative, which is how unparsable ratings are
// counted.
func Classify(rating float64) Category {
	switch {
	case rating >= positiveFloor:
		return Positive
	case rating >= neutralFloor:
		return Neutral
	default:
		return Negative
	}
}
