package llm

// System prompt fragments instructing a language model to delimit Quranic
// quotations so the processor can find them. Callers prepend the one
// matching their configured tag format to the model's system prompt.

const promptXML = `When quoting verses from the Quran, you MUST use this exact format:
<quran ref="SURAH:AYAH">ARABIC_TEXT</quran>

For multiple consecutive verses, use a range:
<quran ref="SURAH:START-END">ARABIC_TEXT</quran>

Examples:
<quran ref="1:1">بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ</quran>
<quran ref="112:1-4">قُلْ هُوَ ٱللَّهُ أَحَدٌ ٱللَّهُ ٱلصَّمَدُ لَمْ يَلِدْ وَلَمْ يُولَدْ وَلَمْ يَكُن لَّهُۥ كُفُوًا أَحَدٌۢ</quran>

Rules:
- Always include the reference (surah:ayah, or surah:start-end for ranges)
- Use the exact Arabic text with full diacritics if possible
- Never paraphrase or partially quote without indication
- If unsure of the exact wording, say "approximately" before the quote`

const promptMarkdown = "When quoting verses from the Quran, use this format:\n" +
	"```quran ref=\"SURAH:AYAH\"\n" +
	"ARABIC_TEXT\n" +
	"```\n\n" +
	"For verse ranges, use:\n" +
	"```quran ref=\"SURAH:START-END\"\n" +
	"ARABIC_TEXT\n" +
	"```\n\n" +
	"Example:\n" +
	"```quran ref=\"112:1-4\"\n" +
	"قُلْ هُوَ ٱللَّهُ أَحَدٌ ٱللَّهُ ٱلصَّمَدُ لَمْ يَلِدْ وَلَمْ يُولَدْ وَلَمْ يَكُن لَّهُۥ كُفُوًا أَحَدٌۢ\n" +
	"```"

const promptBracket = `When quoting Quran verses, use: [[Q:SURAH:AYAH|ARABIC_TEXT]]
For verse ranges: [[Q:SURAH:START-END|ARABIC_TEXT]]

Example: [[Q:1:1|بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ]]
Example range: [[Q:112:1-4|قُلْ هُوَ ٱللَّهُ أَحَدٌ ٱللَّهُ ٱلصَّمَدُ لَمْ يَلِدْ وَلَمْ يُولَدْ وَلَمْ يَكُن لَّهُۥ كُفُوًا أَحَدٌۢ]]`

// PromptMinimal asks only for an inline parenthesized citation; the
// processor still picks these up through inline-reference extraction.
const PromptMinimal = `Always cite Quran verses with their reference number in parentheses immediately after, like: "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ (1:1)" or for ranges "... (112:1-4)"`

// SystemPrompt returns the instruction block for the given tag format.
func SystemPrompt(f TagFormat) string {
	switch f {
	case TagMarkdown:
		return promptMarkdown
	case TagBracket:
		return promptBracket
	default:
		return promptXML
	}
}
