package transcript

import (
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// WriteDocx writes the dialogue as a script document: a bold title, then one
// paragraph per turn with the speaker label in bold.
func WriteDocx(title string, turns []Turn, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for _, t := range turns {
		p := doc.AddParagraph("")
		addStyledRun(p, t.Speaker+": ", true, fontSize)
		addStyledRun(p, t.Text, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
