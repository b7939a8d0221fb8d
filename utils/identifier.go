package utils

import (
	"fmt"
	"strconv"
	"strings"

	"casefile/models"
)

const (
	// DefaultReferenceExample is used when the caller supplies no format example.
	DefaultReferenceExample = "REF-001"

	fallbackPrefix = "REF-"
	defaultPad     = 3
)

// ReferenceFormat is the prefix and zero-padding width inferred from a
// user-supplied format example such as "PRJ-0007".
type ReferenceFormat struct {
	Prefix string
	Pad    int
}

// ParseReferenceFormat splits a trailing run of digits from the example.
// "PRJ-0007" yields {Prefix: "PRJ-", Pad: 4}. An example without trailing
// digits becomes the prefix itself plus "-" with the default padding; an
// empty example falls back to the literal default prefix.
func ParseReferenceFormat(example string) ReferenceFormat {
	example = strings.TrimSpace(example)

	i := len(example)
	for i > 0 && example[i-1] >= '0' && example[i-1] <= '9' {
		i--
	}

	if i < len(example) {
		pad := len(example) - i
		if pad < 1 {
			pad = 1
		}
		return ReferenceFormat{Prefix: example[:i], Pad: pad}
	}

	if example == "" {
		return ReferenceFormat{Prefix: fallbackPrefix, Pad: defaultPad}
	}
	return ReferenceFormat{Prefix: example + "-", Pad: defaultPad}
}

// NextReference computes the next unused identifier for the format implied by
// example. It scans existing values with a case-sensitive prefix match, takes
// the maximum purely-numeric positive tail, and returns max+1 zero-padded to
// at least the example's width. Gaps left by deleted values are never reused.
//
// Note: two callers computing from stale snapshots of the population can
// produce the same candidate; the persisting side must run its duplicate
// check in the same operation.
func NextReference(existing []string, example string) string {
	if strings.TrimSpace(example) == "" {
		example = DefaultReferenceExample
	}
	format := ParseReferenceFormat(example)

	max := 0
	for _, value := range existing {
		if !strings.HasPrefix(value, format.Prefix) {
			continue
		}
		tail := value[len(format.Prefix):]
		if tail == "" || !isAllDigits(tail) {
			continue
		}
		n, err := strconv.Atoi(tail)
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%0*d", format.Prefix, format.Pad, max+1)
}

// IsDuplicateReference reports whether candidate collides with another client
// file's reference. Comparison is case-insensitive and whitespace-trimmed;
// blank candidates are never duplicates because the field is optional.
func IsDuplicateReference(files []models.ClientFile, candidate string, excludeFileID string) bool {
	c := normalizeIdentifier(candidate)
	if c == "" {
		return false
	}
	for _, file := range files {
		if file.ID.Hex() == excludeFileID {
			continue
		}
		if normalizeIdentifier(file.Reference) == c {
			return true
		}
	}
	return false
}

// IsDuplicateProjectNumber reports whether candidate collides with any other
// project's number across every client file. Same comparison rules as
// IsDuplicateReference.
func IsDuplicateProjectNumber(files []models.ClientFile, candidate string, excludeProjectID string) bool {
	c := normalizeIdentifier(candidate)
	if c == "" {
		return false
	}
	for _, file := range files {
		for _, project := range file.Projects {
			if project.ID == excludeProjectID {
				continue
			}
			if normalizeIdentifier(project.ProjectNumber) == c {
				return true
			}
		}
	}
	return false
}

// CollectReferences returns every non-empty reference in the population.
func CollectReferences(files []models.ClientFile) []string {
	var refs []string
	for _, file := range files {
		if file.Reference != "" {
			refs = append(refs, file.Reference)
		}
	}
	return refs
}

// CollectProjectNumbers returns every non-empty project number across all files.
func CollectProjectNumbers(files []models.ClientFile) []string {
	var numbers []string
	for _, file := range files {
		for _, project := range file.Projects {
			if project.ProjectNumber != "" {
				numbers = append(numbers, project.ProjectNumber)
			}
		}
	}
	return numbers
}

func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
