// Package matching scores how well a résumé covers a job's target skills.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

// maxTopBullets caps the number of supporting bullets returned
const maxTopBullets = 5

// reasonPrefix starts every top-bullet reason
const reasonPrefix = "mentions: "

// Match computes skill coverage of targetSkills by a résumé's listed skills and
// experience bullets. All inputs are compared lower-cased. A target is matched
// when it equals a listed skill or occurs as a substring of any bullet.
// Duplicate targets are kept, so matched and missing always partition targetSkills.
func Match(resumeSkills, bullets, targetSkills []string) types.MatchResult {
	skillSet := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		skillSet[strings.ToLower(s)] = true
	}

	lowerBullets := lowerAll(bullets)
	targets := lowerAll(targetSkills)

	matched := make([]string, 0, len(targets))
	matchedSet := make(map[string]bool)
	for _, target := range targets {
		if skillSet[target] || containsAny(lowerBullets, target) {
			matched = append(matched, target)
			matchedSet[target] = true
		}
	}

	missing := make([]string, 0, len(targets)-len(matched))
	for _, target := range targets {
		if !matchedSet[target] {
			missing = append(missing, target)
		}
	}

	return types.MatchResult{
		Score: computeScore(len(matched), len(targets)),
		Coverage: types.Coverage{
			Matched: matched,
			Missing: missing,
		},
		TopBullets: rankBullets(lowerBullets, matched),
	}
}

// MatchResume runs Match over a résumé record, flattening its experience bullets.
func MatchResume(resume *types.Resume, targetSkills []string) types.MatchResult {
	return Match(resume.Skills, resume.Bullets(), targetSkills)
}

// computeScore returns the matched percentage rounded half to even. An empty
// target list scores 0.
func computeScore(matched, total int) int {
	ratio := float64(matched) / float64(max(1, total))
	return int(math.RoundToEven(100 * ratio))
}

type candidate struct {
	bullet types.TopBullet
	hits   int
}

// rankBullets returns up to maxTopBullets bullets that mention matched skills,
// ordered by number of mentioned skills. Ties keep bullet order.
func rankBullets(bullets, matched []string) []types.TopBullet {
	candidates := make([]candidate, 0, len(bullets))
	for _, bullet := range bullets {
		var hits []string
		for _, skill := range matched {
			if strings.Contains(bullet, skill) {
				hits = append(hits, skill)
			}
		}
		if len(hits) == 0 {
			continue
		}
		candidates = append(candidates, candidate{
			bullet: types.TopBullet{
				Text:   bullet,
				Reason: reasonPrefix + strings.Join(hits, ", "),
			},
			hits: len(hits),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].hits > candidates[j].hits
	})

	top := make([]types.TopBullet, 0, min(len(candidates), maxTopBullets))
	for _, c := range candidates {
		if len(top) == maxTopBullets {
			break
		}
		top = append(top, c.bullet)
	}
	return top
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func containsAny(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}
