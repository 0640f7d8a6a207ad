package extractor

import (
	"fmt"
	"hash/fnv"
	"math/bits"
	"strings"

	"golang.org/x/net/html"
)

const (
	// shingleSize is the number of consecutive tags hashed together.
	shingleSize = 3

	// depthCap bounds shingle weights: a shingle opening at depth d weighs
	// depthCap-d, floored at 1, so the page skeleton outweighs deep leaves.
	depthCap = 8
)

// voidTags never take an end tag and do not open a nesting level.
var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

// node is one start tag and the nesting depth it opened at.
type node struct {
	tag   string
	depth int
}

// LayoutFingerprint returns a 64-bit SimHash of the page's tag structure.
// Each shingle is a run of consecutive tags with their relative nesting, so
// the same tags arranged differently fingerprint differently. Text and
// attributes are ignored: two result pages with the same layout and
// different balances share a fingerprint. Comparing the fingerprint of a miss
// with that of a past hit shows whether the portal changed its markup.
func LayoutFingerprint(rawHTML string) uint64 {
	nodes := tagTree(rawHTML)
	if len(nodes) == 0 {
		return 0
	}
	var acc [64]int
	n := max(len(nodes)-shingleSize+1, 1)
	for i := 0; i < n; i++ {
		run := nodes[i:min(i+shingleSize, len(nodes))]
		project(&acc, shingleKey(run), max(depthCap-run[0].depth, 1))
	}
	var fp uint64
	for bit, v := range acc {
		if v > 0 {
			fp |= 1 << bit
		}
	}
	return fp
}

// FormatFingerprint renders a fingerprint as 16 hex digits.
func FormatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}

// LayoutDistance is the number of differing bits between two fingerprints.
func LayoutDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

func tagTree(rawHTML string) []node {
	z := html.NewTokenizer(strings.NewReader(rawHTML))
	var (
		nodes []node
		depth int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return nodes
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			nodes = append(nodes, node{tag: tag, depth: depth})
			if _, void := voidTags[tag]; !void {
				depth++
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			nodes = append(nodes, node{tag: string(name), depth: depth})
		case html.EndTagToken:
			depth = max(depth-1, 0)
		}
	}
}

// shingleKey renders a run as "div>p=span": ">" descends, "=" stays at the
// same level and "<N" climbs N levels.
func shingleKey(run []node) string {
	var b strings.Builder
	for i, n := range run {
		if i > 0 {
			switch d := n.depth - run[i-1].depth; {
			case d > 0:
				b.WriteString(">")
			case d == 0:
				b.WriteString("=")
			default:
				fmt.Fprintf(&b, "<%d", -d)
			}
		}
		b.WriteString(n.tag)
	}
	return b.String()
}

// project adds the feature's hash to acc: +weight on set bits, -weight on
// clear ones.
func project(acc *[64]int, feature string, weight int) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()
	for bit := range acc {
		acc[bit] += weight * (int(sum>>bit&1)*2 - 1)
	}
}
