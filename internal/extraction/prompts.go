package extraction

const solidPrompt = "Sample the colors of the image. Reply with only the 8 main colors you sampled, " +
	"as a JSON array of hex strings such as [\"#1a2b3c\", ...]. " +
	"Respond with strict JSON and nothing other than the JSON."

const gradientPrompt = "Analyze the colors of the image and extract 4 color pairs usable as gradients " +
	"(a start color and an end color). Reply with a JSON array whose elements each have " +
	"\"start\" and \"end\" properties, for example: [{\"start\":\"#123456\",\"end\":\"#789abc\"},...]. " +
	"Respond with strict JSON and no other text."

func systemPrompt(t Type) string {
	if t == TypeGradient {
		return gradientPrompt
	}
	return solidPrompt
}
