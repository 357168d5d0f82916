package agent

import "github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"

// Provider routing identifiers. Conversational agents share a common pool;
// the image-extraction path attaches its own file-processing agents at
// upload time.
var (
	analyticsAgentIDs  = []string{"agent-1712327325", "agent-1713962163"}
	assignmentAgentIDs = []string{"agent-1712327325", "agent-1713962163", "agent-1768589843"}
	examAgentIDs       = []string{"agent-1712327325", "agent-1713962163", "agent-1768589843"}
	scheduleAgentIDs   = []string{"agent-1712327325", "agent-1713962163", "agent-1768589843"}
	lessonAgentIDs     = []string{"agent-1712327325", "agent-1713962163", "agent-1768589843"}
	doubtAgentIDs      = []string{"agent-1712327325", "agent-1713962163", "agent-1768589843"}
	imageAgentIDs      = []string{"agent-1712327325", "agent-1713962163"}
	imageFileAgents    = []string{"agent-1713954536", "agent-1713958591", "agent-1713958830", "agent-1713961903", "agent-1713967141"}
)

const (
	endpointGrok   = "predefined-xai-grok4.1-fast"
	endpointGPT    = "predefined-openai-gpt5.2"
	endpointClaude = "predefined-claude-4-5-sonnet"

	reasoningMode = "grok-4-fast"
)

// Per-agent sampling parameters. The token ceilings track the size of each
// agent's expected payload: a full exam needs far more room than an
// analytics report.
func analyticsModelConfig() ondemand.ModelConfig {
	return ondemand.ModelConfig{
		FulfillmentPrompt: analyticsPrompt,
		StopSequences:     []string{},
		Temperature:       0.7,
		TopP:              1,
		MaxTokens:         2560,
	}
}

func assignmentModelConfig() ondemand.ModelConfig {
	return ondemand.ModelConfig{
		FulfillmentPrompt: assignmentPrompt,
		StopSequences:     []string{},
		Temperature:       0.6,
		TopP:              1,
		MaxTokens:         6000,
	}
}

func examModelConfig() ondemand.ModelConfig {
	return ondemand.ModelConfig{
		FulfillmentPrompt: examPrompt,
		StopSequences:     []string{},
		Temperature:       0.5,
		TopP:              1,
		MaxTokens:         8000,
	}
}

func scheduleModelConfig(profile StudentProfile, chapter ChapterInfo) ondemand.ModelConfig {
	return ondemand.ModelConfig{
		FulfillmentPrompt: schedulePrompt(profile, chapter),
		StopSequences:     []string{},
		Temperature:       0.6,
		TopP:              1,
		MaxTokens:         6400,
	}
}

func lessonModelConfig() ondemand.ModelConfig {
	return ondemand.ModelConfig{
		FulfillmentPrompt: lessonPrompt,
		StopSequences:     []string{},
		Temperature:       0.7,
		TopP:              1,
		MaxTokens:         5427,
	}
}

func imageModelConfig() ondemand.ModelConfig {
	return ondemand.ModelConfig{
		FulfillmentPrompt: imagePrompt,
		StopSequences:     []string{},
		Temperature:       0.5,
		TopP:              1,
		MaxTokens:         2839,
	}
}

func doubtModelConfig(profile StudentProfile, extractedImageData string) ondemand.ModelConfig {
	return ondemand.ModelConfig{
		FulfillmentPrompt: doubtPrompt(profile, extractedImageData),
		StopSequences:     []string{},
		Temperature:       0.6,
		TopP:              1,
		MaxTokens:         8000,
	}
}

func dailyQuestionsModelConfig(profile StudentProfile) ondemand.ModelConfig {
	return ondemand.ModelConfig{
		FulfillmentPrompt: dailyQuestionsPrompt(profile),
		StopSequences:     []string{},
		Temperature:       0.7,
		TopP:              1,
		MaxTokens:         4000,
	}
}
