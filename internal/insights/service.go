package insights

import (
	"context"
	"strings"

	"cvtoaster-backend/internal/llm"
	"cvtoaster-backend/internal/semindex"
	"cvtoaster-backend/internal/textproc"
)

// Service is the single orchestrator behind every generation feature. The
// per-feature differences (template, temperature, retrieval query,
// post-processing) live in the feature table, not in separate code paths.
type Service struct {
	Generator llm.Generator
	Embedder  llm.Embedder

	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

// Request carries the inputs for one generation. Which fields are required
// depends on the feature.
type Request struct {
	Feature        Feature
	ResumeText     string
	CandidateName  string
	JobDescription string
	CompanyName    string
	PositionName   string
	RecipientName  string
	PlatformName   string
	Content        string
}

// Generate runs the full pipeline for the requested feature: validate,
// chunk and index the resume, retrieve context, fill the template, call the
// generation model and post-process its output.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	spec, ok := featureSpecs[req.Feature]
	if !ok {
		return "", ErrUnknownFeature
	}
	if err := validate(req); err != nil {
		return "", err
	}

	data := promptData{
		CandidateName:  req.CandidateName,
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		PositionName:   req.PositionName,
		RecipientName:  req.RecipientName,
		PlatformName:   req.PlatformName,
		Content:        req.Content,
	}

	if spec.retrieval {
		retrieved, err := s.retrieveContext(ctx, spec, req)
		if err != nil {
			return "", err
		}
		data.Context = retrieved
	}

	prompt, err := renderPrompt(req.Feature, data)
	if err != nil {
		return "", err
	}

	out, err := s.Generator.Generate(ctx, prompt, spec.temperature)
	if err != nil {
		return "", err
	}
	return postProcess(spec, out), nil
}

func (s *Service) retrieveContext(ctx context.Context, spec featureSpec, req Request) (string, error) {
	resumeText := strings.TrimSpace(req.ResumeText)
	chunks := textproc.Chunk(resumeText, s.chunkSize(), s.chunkOverlap())
	if len(chunks) == 0 {
		return "", ErrEmptyDocument
	}

	index, err := semindex.Build(ctx, s.Embedder, chunks)
	if err != nil {
		return "", err
	}

	query := resumeText
	if spec.queryJobDescription {
		query = req.JobDescription
	}
	docs, err := index.Search(ctx, query, s.TopK)
	if err != nil {
		return "", err
	}
	return strings.Join(docs, "\n\n"), nil
}

func validate(req Request) error {
	switch req.Feature {
	case FeatureRoast, FeatureFeedback:
		if strings.TrimSpace(req.CandidateName) == "" {
			return missingInput("candidate_name")
		}
	case FeatureImprove:
		if strings.TrimSpace(req.Content) == "" {
			return missingInput("content")
		}
	case FeatureATS:
		if strings.TrimSpace(req.JobDescription) == "" {
			return missingInput("job_description")
		}
	case FeatureCoverLetter:
		required := []struct{ field, value string }{
			{"job_description", req.JobDescription},
			{"company_name", req.CompanyName},
			{"position_name", req.PositionName},
			{"recipient_name", req.RecipientName},
			{"candidate_name", req.CandidateName},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				return missingInput(r.field)
			}
		}
	}
	return nil
}

func postProcess(spec featureSpec, out string) string {
	if spec.stripAsterisks {
		out = strings.ReplaceAll(out, "*", `"`)
	}
	if spec.dedupe {
		out = textproc.RemoveDuplicateLines(out)
	}
	return strings.TrimSpace(out)
}

func (s *Service) chunkSize() int {
	if s.ChunkSize > 0 {
		return s.ChunkSize
	}
	return textproc.DefaultChunkSize
}

func (s *Service) chunkOverlap() int {
	if s.ChunkOverlap > 0 {
		return s.ChunkOverlap
	}
	return textproc.DefaultChunkOverlap
}
