package pdf

// Font family names used throughout the PDF generator. These are fpdf's
// built-in core fonts, so nothing needs to be embedded; text is converted
// to cp1252 with the document's Unicode translator.
const (
	fontSans = "Helvetica"
	fontMono = "Courier"
)
