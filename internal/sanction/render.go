package sanction

import (
	"fmt"
	"html"
)

// RenderHTML wraps the stored letter text in the document view served to the
// applicant. Letter text is model-generated, so it is escaped before
// embedding.
func RenderHTML(letterText string) string {
	return fmt.Sprintf(
		"<div style='padding:40px; border:2px solid blue;'><h1>SANCTION LETTER</h1><p>%s</p></div>",
		html.EscapeString(letterText))
}
