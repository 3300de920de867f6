package insights

// Feature selects one of the generation features. Each feature maps to a
// prompt template plus fixed retrieval and post-processing behavior.
type Feature string

const (
	FeatureRoast       Feature = "roast"
	FeatureFeedback    Feature = "feedback"
	FeatureImprove     Feature = "improve_content"
	FeatureATS         Feature = "ats_analysis"
	FeatureCoverLetter Feature = "cover_letter"
)

type featureSpec struct {
	temperature float32
	// retrieval features chunk the resume text and build a per-request
	// semantic index; improve_content prompts on the raw content directly.
	retrieval bool
	// query the index with the job description instead of the resume text.
	queryJobDescription bool
	// replace asterisks with double quotes before deduplication.
	stripAsterisks bool
	dedupe         bool
}

var featureSpecs = map[Feature]featureSpec{
	FeatureRoast:       {temperature: 1.0, retrieval: true, stripAsterisks: true, dedupe: true},
	FeatureFeedback:    {temperature: 0.7, retrieval: true, stripAsterisks: true, dedupe: true},
	FeatureImprove:     {temperature: 1.0},
	FeatureATS:         {temperature: 0.7, retrieval: true, queryJobDescription: true, dedupe: true},
	FeatureCoverLetter: {temperature: 0.7, retrieval: true, queryJobDescription: true},
}
