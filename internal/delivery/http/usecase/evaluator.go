package usecase

import (
	"fmt"
	"math"

	httpEntity "github.com/fahrizm/soalgen-be/internal/delivery/http/entity"
	internalEntity "github.com/fahrizm/soalgen-be/internal/entity"
	"github.com/fahrizm/soalgen-be/internal/pkg/mapper"
)

// ConvergenceEvaluator scores a candidate selection against the request.
// It only reports; it never mutates selection state. The engine decides
// whether to keep iterating based on OverallScore alone.
type ConvergenceEvaluator interface {
	Evaluate(req httpEntity.PaperRequest, selected []internalEntity.QuestionBankEntry) *httpEntity.EvaluationReport
}

type convergenceEvaluator struct{}

func NewConvergenceEvaluator() ConvergenceEvaluator {
	return &convergenceEvaluator{}
}

func (e *convergenceEvaluator) Evaluate(req httpEntity.PaperRequest, selected []internalEntity.QuestionBankEntry) *httpEntity.EvaluationReport {
	report := &httpEntity.EvaluationReport{}

	topicCounts := map[string]int{}
	totalTopicOccurrences := 0
	for i := range selected {
		for _, t := range mapper.DecodeStringList(selected[i].Topics) {
			topicCounts[t]++
			totalTopicOccurrences++
		}
		for _, t := range mapper.DecodeStringList(selected[i].Tags) {
			topicCounts[t]++
			totalTopicOccurrences++
		}
	}

	report.CoverageScore = e.coverage(req, topicCounts, len(selected))
	report.DiversityScore = e.diversity(topicCounts, totalTopicOccurrences)
	report.DifficultyBalanceScore = e.difficultyBalance(req, selected)
	report.OverallScore = (report.CoverageScore + report.DiversityScore + report.DifficultyBalanceScore) / 3

	e.fillFindings(req, selected, topicCounts, report)

	return report
}

// coverage is the fraction of the requested topic breadth represented in the
// selection. Without requested topics, any non-empty selection trivially
// covers the requested subject/chapter.
func (e *convergenceEvaluator) coverage(req httpEntity.PaperRequest, topicCounts map[string]int, selectedCount int) float64 {
	if len(req.Topics) == 0 {
		if selectedCount > 0 {
			return 1
		}
		return 0
	}
	covered := 0
	for _, t := range req.Topics {
		if topicCounts[t] > 0 {
			covered++
		}
	}
	return float64(covered) / float64(len(req.Topics))
}

// diversity is high when topic/tag occurrences rarely repeat: distinct values
// over total occurrences. No labeled items at all scores zero.
func (e *convergenceEvaluator) diversity(topicCounts map[string]int, totalOccurrences int) float64 {
	if totalOccurrences == 0 {
		return 0
	}
	return float64(len(topicCounts)) / float64(totalOccurrences)
}

// difficultyBalance compares generated per-bucket proportions against the
// requested ones: 1 minus half the L1 distance between the distributions.
func (e *convergenceEvaluator) difficultyBalance(req httpEntity.PaperRequest, selected []internalEntity.QuestionBankEntry) float64 {
	requestedTotal := req.EasyCount + req.MediumCount + req.HardCount
	if requestedTotal == 0 || len(selected) == 0 {
		return 0
	}

	generated := map[string]int{}
	for i := range selected {
		generated[selected[i].Difficulty]++
	}

	requested := map[string]int{
		internalEntity.DifficultyEasy:   req.EasyCount,
		internalEntity.DifficultyMedium: req.MediumCount,
		internalEntity.DifficultyHard:   req.HardCount,
	}

	distance := 0.0
	for _, d := range []string{internalEntity.DifficultyEasy, internalEntity.DifficultyMedium, internalEntity.DifficultyHard} {
		reqProp := float64(requested[d]) / float64(requestedTotal)
		genProp := float64(generated[d]) / float64(len(selected))
		distance += math.Abs(reqProp - genProp)
	}
	return 1 - distance/2
}

func (e *convergenceEvaluator) fillFindings(req httpEntity.PaperRequest, selected []internalEntity.QuestionBankEntry, topicCounts map[string]int, report *httpEntity.EvaluationReport) {
	for _, t := range req.Topics {
		count := topicCounts[t]
		if count == 0 {
			report.MissingTopics = append(report.MissingTopics, t)
			continue
		}
		// Under-represented: below an even share of the selection.
		if count*len(req.Topics) < len(selected) {
			report.WeakAreas = append(report.WeakAreas, t)
		}
	}

	generated := map[string]int{}
	for i := range selected {
		generated[selected[i].Difficulty]++
	}
	shortfalls := map[string]int{
		internalEntity.DifficultyEasy:   req.EasyCount - generated[internalEntity.DifficultyEasy],
		internalEntity.DifficultyMedium: req.MediumCount - generated[internalEntity.DifficultyMedium],
		internalEntity.DifficultyHard:   req.HardCount - generated[internalEntity.DifficultyHard],
	}
	for _, d := range []string{internalEntity.DifficultyEasy, internalEntity.DifficultyMedium, internalEntity.DifficultyHard} {
		if shortfalls[d] > 0 {
			report.Suggestions = append(report.Suggestions,
				fmt.Sprintf("bank kekurangan %d soal %s untuk %s", shortfalls[d], d, req.Subject))
		}
	}
	for _, t := range report.MissingTopics {
		report.Suggestions = append(report.Suggestions,
			fmt.Sprintf("tidak ada soal dengan topik %q di bank", t))
	}
}
