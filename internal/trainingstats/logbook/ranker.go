package logbook

import "sort"

const recentDifficultyEntries = 10

// TagCount is one row of a ranked tag list.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// FrequencySummary holds the ranked tag lists the logbook summary and the
// recommendation score are built from.
type FrequencySummary struct {
	// StrongSkills are the most trained focus tags.
	StrongSkills []TagCount `json:"strongSkills"`
	// WeakSkills are the most frequent difficulty tags.
	WeakSkills []TagCount `json:"weakSkills"`
	// RecentDifficultyRatio is the share of the (up to) 10 most recent entries
	// carrying at least one difficulty tag.
	RecentDifficultyRatio float64 `json:"recentDifficultyRatio"`
}

// RankTags counts every tag occurrence of field across entries and returns at most
// topK tags by count descending. Equal counts keep first-seen order.
func RankTags(entries []LogEntry, field TagField, topK int) []TagCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		for _, tag := range field.tags(e) {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	ranked := make([]TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if topK < 0 {
		topK = 0
	}
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	return ranked
}

// Frequencies builds the strong/weak skill lists and the recent difficulty ratio.
func Frequencies(entries []LogEntry, topK int) FrequencySummary {
	return FrequencySummary{
		StrongSkills:          RankTags(entries, FieldTrainingFocus, topK),
		WeakSkills:            RankTags(entries, FieldDifficulty, topK),
		RecentDifficultyRatio: recentDifficultyRatio(entries),
	}
}

func recentDifficultyRatio(entries []LogEntry) float64 {
	recent := RecentFirst(entries)
	if len(recent) > recentDifficultyEntries {
		recent = recent[:recentDifficultyEntries]
	}
	if len(recent) == 0 {
		return 0
	}

	withDifficulty := 0
	for _, e := range recent {
		if e.hasDifficulty() {
			withDifficulty++
		}
	}
	return float64(withDifficulty) / float64(len(recent))
}
