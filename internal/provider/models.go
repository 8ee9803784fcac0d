package provider

// DefaultModel matches the headless default of the original tool.
const DefaultModel = "gpt-4o-mini"

// The supported model lists are static; there is no live capability
// negotiation against any backend.
var modelsByKind = map[Kind][]string{
	KindOpenAI:    {"gpt-4o", "gpt-4o-mini", "o3", "o4-mini", "gpt-4.1", "gpt-4.1-mini"},
	KindAnthropic: {"claude-opus-4-1", "claude-sonnet-4-5", "claude-haiku-4-5"},
	KindOllama:    {"llama3.1", "qwen3", "mistral"},
}

// kindOrder keeps listings deterministic.
var kindOrder = []Kind{KindOpenAI, KindAnthropic, KindOllama}

// SupportedModels returns every supported model identifier, grouped by
// provider in a fixed order.
func SupportedModels() []string {
	var out []string
	for _, k := range kindOrder {
		out = append(out, modelsByKind[k]...)
	}
	return out
}

// ModelsFor returns the fixed model list of one provider.
func ModelsFor(kind Kind) []string {
	models := modelsByKind[kind]
	out := make([]string, len(models))
	copy(out, models)
	return out
}

// KindForModel maps a supported model identifier to its provider.
func KindForModel(model string) (Kind, bool) {
	for _, k := range kindOrder {
		for _, m := range modelsByKind[k] {
			if m == model {
				return k, true
			}
		}
	}
	return "", false
}
