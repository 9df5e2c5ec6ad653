package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	httpEntity "github.com/fahrizm/soalgen-be/internal/delivery/http/entity"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/repository"
	internalEntity "github.com/fahrizm/soalgen-be/internal/entity"
	"github.com/fahrizm/soalgen-be/internal/pkg/llm"
	"github.com/fahrizm/soalgen-be/internal/pkg/mapper"
	"github.com/fahrizm/soalgen-be/internal/pkg/vecindex"
	"github.com/sirupsen/logrus"
)

const (
	StrategySingleShot  = "v1"
	StrategyPermutation = "v1.5"
	StrategyKeyword     = "v2"
)

type PaperUsecase interface {
	Generate(ctx context.Context, req httpEntity.PaperRequest) (*httpEntity.GeneratedPaper, error)
	GenerateDiversified(ctx context.Context, req httpEntity.PaperRequest) (*httpEntity.GeneratedPaper, error)
	GenerateEvaluated(ctx context.Context, req httpEntity.PaperRequest) (*httpEntity.GeneratedPaper, error)
}

type PaperConfig struct {
	Log       *logrus.Logger
	Repo      repository.QuestionBankRepository
	Index     vecindex.QuestionBankIndex
	Embedder  llm.Embedder
	Evaluator ConvergenceEvaluator

	// ConvergenceThreshold stops v2 iteration once the evaluator's overall
	// score reaches it. Defaults to 0.8.
	ConvergenceThreshold float64
	// QueryLimit is the topK of each bank query. Defaults to 50.
	QueryLimit int
	// DefaultMaxIterations applies when the request leaves max_iterations
	// unset. Defaults to 5.
	DefaultMaxIterations int
}

type paperUsecase struct {
	cfg PaperConfig
}

func NewPaperUsecase(cfg PaperConfig) PaperUsecase {
	if cfg.ConvergenceThreshold <= 0 {
		cfg.ConvergenceThreshold = 0.8
	}
	if cfg.QueryLimit <= 0 {
		cfg.QueryLimit = 50
	}
	if cfg.DefaultMaxIterations <= 0 {
		cfg.DefaultMaxIterations = 5
	}
	return &paperUsecase{cfg: cfg}
}

// assembly is the per-request quota-filling state: the growing candidate pool
// in discovery order plus the exclusion set of already-selected ids.
type assembly struct {
	req       httpEntity.PaperRequest
	pool      []poolItem
	seen      map[string]int // entryID -> discovery order
	excluded  map[string]bool
	selected  []internalEntity.QuestionBankEntry
	generated httpEntity.DifficultyCounts
}

type poolItem struct {
	entry internalEntity.QuestionBankEntry
	score float64
	order int
}

func newAssembly(req httpEntity.PaperRequest) *assembly {
	return &assembly{
		req:      req,
		seen:     map[string]int{},
		excluded: map[string]bool{},
	}
}

func (a *assembly) remaining(difficulty string) int {
	switch difficulty {
	case internalEntity.DifficultyEasy:
		return a.req.EasyCount - a.generated.Easy
	case internalEntity.DifficultyMedium:
		return a.req.MediumCount - a.generated.Medium
	case internalEntity.DifficultyHard:
		return a.req.HardCount - a.generated.Hard
	}
	return 0
}

func (a *assembly) quotasFilled() bool {
	return a.remaining(internalEntity.DifficultyEasy) == 0 &&
		a.remaining(internalEntity.DifficultyMedium) == 0 &&
		a.remaining(internalEntity.DifficultyHard) == 0
}

// extend merges newly ranked candidates into the pool. A candidate seen in an
// earlier iteration keeps its original discovery order; its score is only
// raised, never lowered, so re-discovery cannot demote it.
func (a *assembly) extend(candidates []vecindex.Candidate, entries map[string]internalEntity.QuestionBankEntry) {
	for _, c := range candidates {
		entry, ok := entries[c.EntryID]
		if !ok {
			continue
		}
		if order, dup := a.seen[c.EntryID]; dup {
			for i := range a.pool {
				if a.pool[i].order == order && a.pool[i].score < c.Score {
					a.pool[i].score = c.Score
				}
			}
			continue
		}
		order := len(a.seen)
		a.seen[c.EntryID] = order
		a.pool = append(a.pool, poolItem{entry: entry, score: c.Score, order: order})
	}
}

// fill runs the core quota-fill step: per difficulty bucket, rank unselected
// pool candidates by score (ties broken by earliest discovery, for
// determinism) and accept up to the remaining need. Never over-fills a bucket.
func (a *assembly) fill() {
	byDifficulty := map[string][]poolItem{}
	for _, item := range a.pool {
		byDifficulty[item.entry.Difficulty] = append(byDifficulty[item.entry.Difficulty], item)
	}

	for _, d := range []string{internalEntity.DifficultyEasy, internalEntity.DifficultyMedium, internalEntity.DifficultyHard} {
		need := a.remaining(d)
		if need <= 0 {
			continue
		}
		bucket := byDifficulty[d]
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].score != bucket[j].score {
				return bucket[i].score > bucket[j].score
			}
			return bucket[i].order < bucket[j].order
		})
		for _, item := range bucket {
			if need == 0 {
				break
			}
			// Already-selected candidates are skipped silently.
			if a.excluded[item.entry.EntryID] {
				continue
			}
			a.excluded[item.entry.EntryID] = true
			a.selected = append(a.selected, item.entry)
			switch d {
			case internalEntity.DifficultyEasy:
				a.generated.Easy++
			case internalEntity.DifficultyMedium:
				a.generated.Medium++
			case internalEntity.DifficultyHard:
				a.generated.Hard++
			}
			need--
		}
	}
}

func (u *paperUsecase) validate(req httpEntity.PaperRequest) error {
	if strings.TrimSpace(req.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if req.EasyCount < 0 || req.MediumCount < 0 || req.HardCount < 0 {
		return fmt.Errorf("quota counts must not be negative")
	}
	if req.EasyCount+req.MediumCount+req.HardCount == 0 {
		return fmt.Errorf("at least one difficulty quota must be positive")
	}
	if req.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be at least 1")
	}
	return nil
}

func (u *paperUsecase) maxIterations(req httpEntity.PaperRequest) int {
	if req.MaxIterations >= 1 {
		return req.MaxIterations
	}
	return u.cfg.DefaultMaxIterations
}

func (u *paperUsecase) baseQueryText(req httpEntity.PaperRequest) string {
	parts := []string{req.Subject}
	if req.Chapter != "" {
		parts = append(parts, req.Chapter)
	}
	parts = append(parts, req.Topics...)
	parts = append(parts, req.Tags...)
	if req.Description != "" {
		parts = append(parts, req.Description)
	}
	return strings.Join(parts, " ")
}

// queryBank embeds the query text, searches the index and hydrates the ranked
// ids from the bank, then merges the result into the assembly pool.
func (u *paperUsecase) queryBank(ctx context.Context, a *assembly, queryText string) error {
	vector, err := u.cfg.Embedder.Embed(ctx, queryText)
	if err != nil {
		return fmt.Errorf("failed to embed query: %w", err)
	}

	filter := vecindex.QueryFilter{
		Subject: a.req.Subject,
		Chapter: a.req.Chapter,
		Tags:    a.req.Tags,
		Topics:  a.req.Topics,
	}
	candidates, err := u.cfg.Index.Search(ctx, vector, filter, u.cfg.QueryLimit)
	if err != nil {
		return fmt.Errorf("bank query failed: %w", err)
	}
	if len(candidates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.EntryID)
	}
	rows, err := u.cfg.Repo.FindByEntryIDs(nil, ids)
	if err != nil {
		return fmt.Errorf("failed to hydrate candidates: %w", err)
	}
	entries := make(map[string]internalEntity.QuestionBankEntry, len(rows))
	for i := range rows {
		entries[rows[i].EntryID] = rows[i]
	}

	a.extend(candidates, entries)
	return nil
}

func (u *paperUsecase) buildPaper(a *assembly, strategy string, iterations int) (*httpEntity.GeneratedPaper, error) {
	items := make([]httpEntity.PaperItem, 0, len(a.selected))
	for i := range a.selected {
		item, err := mapper.ConvertToPaperItem(&a.selected[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map entry %s: %w", a.selected[i].EntryID, err)
		}
		items = append(items, item)
	}

	requested := httpEntity.DifficultyCounts{
		Easy:   a.req.EasyCount,
		Medium: a.req.MediumCount,
		Hard:   a.req.HardCount,
	}
	return &httpEntity.GeneratedPaper{
		Items:      items,
		Requested:  requested,
		Generated:  a.generated,
		Iterations: iterations,
		Strategy:   strategy,
		QuotaMet:   a.generated == requested,
	}, nil
}

// Generate fills the quotas from a single broad query. No iteration, no
// evaluation.
func (u *paperUsecase) Generate(ctx context.Context, req httpEntity.PaperRequest) (*httpEntity.GeneratedPaper, error) {
	if err := u.validate(req); err != nil {
		return nil, err
	}

	a := newAssembly(req)
	if err := u.queryBank(ctx, a, u.baseQueryText(req)); err != nil {
		return nil, err
	}
	a.fill()

	return u.buildPaper(a, StrategySingleShot, 1)
}

// GenerateDiversified iterates over the distinct topic/tag permutations
// observable in the bank for the requested subject/chapter, biasing one query
// per permutation until quotas fill, iterations run out, or permutations are
// exhausted.
func (u *paperUsecase) GenerateDiversified(ctx context.Context, req httpEntity.PaperRequest) (*httpEntity.GeneratedPaper, error) {
	if err := u.validate(req); err != nil {
		return nil, err
	}

	permutations, err := u.discoverPermutations(req)
	if err != nil {
		return nil, err
	}

	a := newAssembly(req)
	base := u.baseQueryText(req)
	maxIterations := u.maxIterations(req)

	iterations := 0
	permutationsUsed := 0
	for iterations < maxIterations && permutationsUsed < len(permutations) && !a.quotasFilled() {
		perm := permutations[permutationsUsed]
		permutationsUsed++
		iterations++

		if err := u.queryBank(ctx, a, base+" "+perm); err != nil {
			return nil, err
		}
		a.fill()
	}

	// No permutations at all: fall back to one broad query so an unlabeled
	// bank can still produce a paper.
	if len(permutations) == 0 {
		iterations = 1
		if err := u.queryBank(ctx, a, base); err != nil {
			return nil, err
		}
		a.fill()
	}

	paper, err := u.buildPaper(a, StrategyPermutation, iterations)
	if err != nil {
		return nil, err
	}
	paper.PermutationsAvailable = len(permutations)
	paper.PermutationsUsed = permutationsUsed

	topics := map[string]bool{}
	tags := map[string]bool{}
	for _, item := range a.pool {
		for _, t := range mapper.DecodeStringList(item.entry.Topics) {
			topics[t] = true
		}
		for _, t := range mapper.DecodeStringList(item.entry.Tags) {
			tags[t] = true
		}
	}
	paper.TopicsDiscovered = len(topics)
	paper.TagsDiscovered = len(tags)

	return paper, nil
}

// GenerateEvaluated biases each iteration by one derived keyword and stops as
// soon as the evaluator's overall score reaches the convergence threshold.
func (u *paperUsecase) GenerateEvaluated(ctx context.Context, req httpEntity.PaperRequest) (*httpEntity.GeneratedPaper, error) {
	if err := u.validate(req); err != nil {
		return nil, err
	}

	keywords := DeriveKeywords(req.Subject, req.Chapter, req.Description)
	a := newAssembly(req)
	base := u.baseQueryText(req)
	maxIterations := u.maxIterations(req)

	var report *httpEntity.EvaluationReport
	var keywordsUsed []string

	iterations := 0
	for iterations < maxIterations && !a.quotasFilled() {
		queryText := base
		if iterations < len(keywords) {
			keyword := keywords[iterations]
			keywordsUsed = append(keywordsUsed, keyword)
			queryText = base + " " + keyword
		} else if iterations > 0 {
			// Keywords exhausted on a later iteration: nothing new to bias
			// the query with.
			break
		}
		iterations++

		if err := u.queryBank(ctx, a, queryText); err != nil {
			return nil, err
		}
		a.fill()

		report = u.cfg.Evaluator.Evaluate(req, a.selected)
		if report.OverallScore >= u.cfg.ConvergenceThreshold {
			break
		}
	}

	if report == nil {
		report = u.cfg.Evaluator.Evaluate(req, a.selected)
	}

	paper, err := u.buildPaper(a, StrategyKeyword, iterations)
	if err != nil {
		return nil, err
	}
	paper.KeywordsUsed = keywordsUsed
	paper.Evaluation = report

	return paper, nil
}

// discoverPermutations lists the distinct topic/tag combinations present in
// the bank for the subject/chapter, sorted for deterministic iteration order.
func (u *paperUsecase) discoverPermutations(req httpEntity.PaperRequest) ([]string, error) {
	rows, err := u.cfg.Repo.FindBySubjectChapter(nil, req.Subject, req.Chapter, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to discover permutations: %w", err)
	}

	set := map[string]bool{}
	for i := range rows {
		labels := append(mapper.DecodeStringList(rows[i].Topics), mapper.DecodeStringList(rows[i].Tags)...)
		if len(labels) == 0 {
			continue
		}
		sort.Strings(labels)
		set[strings.Join(labels, " ")] = true
	}

	permutations := make([]string, 0, len(set))
	for p := range set {
		permutations = append(permutations, p)
	}
	sort.Strings(permutations)
	return permutations, nil
}

var keywordStopwords = map[string]bool{
	"dan": true, "atau": true, "yang": true, "untuk": true, "dengan": true,
	"dari": true, "pada": true, "dalam": true, "tentang": true, "serta": true,
	"the": true, "and": true, "for": true, "with": true, "about": true,
}

// DeriveKeywords tokenizes subject/chapter/description into a ranked keyword
// list: frequency-descending, first occurrence breaking ties.
func DeriveKeywords(subject, chapter, description string) []string {
	text := strings.ToLower(subject + " " + chapter + " " + description)
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})

	counts := map[string]int{}
	first := map[string]int{}
	for i, tok := range tokens {
		if len(tok) < 3 || keywordStopwords[tok] {
			continue
		}
		if _, ok := first[tok]; !ok {
			first[tok] = i
		}
		counts[tok]++
	}

	keywords := make([]string, 0, len(counts))
	for k := range counts {
		keywords = append(keywords, k)
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return first[keywords[i]] < first[keywords[j]]
	})
	return keywords
}
