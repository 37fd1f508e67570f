package notation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrUnclassified    = errors.New("move matches no notation shape")
	ErrAmbiguousBucket = errors.New("move matches more than one notation shape")
	ErrUnexpectedMove  = errors.New("unexpected move format")
)

type Bucket int

const (
	Normal Bucket = iota
	FileDisambiguated
	RankDisambiguated
	RankFileDisambiguated
)

// Buckets lists every bucket in report order.
var Buckets = []Bucket{Normal, FileDisambiguated, RankDisambiguated, RankFileDisambiguated}

var bucketLabels = map[Bucket]string{
	Normal:                "normal",
	FileDisambiguated:     "file disambiguated",
	RankDisambiguated:     "rank disambiguated",
	RankFileDisambiguated: "rank&file disambiguated",
}

func (b Bucket) String() string {
	label, ok := bucketLabels[b]
	if !ok {
		return "unknown"
	}
	return label
}

var bucketPatterns = map[Bucket]*regexp.Regexp{
	Normal:                regexp.MustCompile(`^[RBNQ][a-h][1-8]$`),
	FileDisambiguated:     regexp.MustCompile(`^[RBNQ][a-h][a-h][1-8]$`),
	RankDisambiguated:     regexp.MustCompile(`^[RBNQ][1-8][a-h][1-8]$`),
	RankFileDisambiguated: regexp.MustCompile(`^[RBNQ][a-h][1-8][a-h][1-8]$`),
}

/*
	Normalize turns a SAN string from the oracle into a MoveString.
	King moves (castling included) are dropped, the check/mate suffix
	and every capture marker are removed.
*/
func Normalize(san string) (string, bool) {
	if san == "" || san[0] == 'K' || san[0] == 'k' || san[0] == 'O' {
		return "", false
	}

	san = strings.TrimRight(san, "+#")
	return strings.ReplaceAll(san, "x", ""), true
}

// Classify returns the single bucket whose pattern matches m.
func Classify(m string) (Bucket, error) {
	found := Bucket(-1)
	for _, b := range Buckets {
		if !bucketPatterns[b].MatchString(m) {
			continue
		}
		if found != -1 {
			return found, ErrAmbiguousBucket
		}
		found = b
	}

	if found == -1 {
		return found, ErrUnclassified
	}
	return found, nil
}

var sanPattern = regexp.MustCompile(`^([KQRBN]?)([a-h]?[1-8]?)x?([a-h][1-8])((?:=[QRBN])?)[+#]?$`)

// Destination strips the origin, the capture marker and the check suffix,
// leaving piece, destination square and promotion.
func Destination(san string) (string, error) {
	if strings.HasPrefix(san, "O") {
		return strings.TrimRight(san, "+#"), nil
	}

	parts := sanPattern.FindStringSubmatch(san)
	if parts == nil {
		return "", ErrUnexpectedMove
	}
	return parts[1] + parts[3] + parts[4], nil
}
