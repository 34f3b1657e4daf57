package mapping

import "github.com/nconklindev/diacritix/internal/types"

// defaultTable is the compiled-in character table. Quote handling is fixed:
// the straight double quote is deleted, the straight apostrophe becomes a
// space, low-9 quotation marks are deleted.
var defaultTable = types.CharacterMap{
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Ä': "A", 'Å': "A", 'Æ': "AE",
	'Ç': "C", 'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I", 'Ð': "D", 'Ñ': "N",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ö': "O", 'Ø': "O",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ü': "U", 'Ý': "Y", 'Þ': "TH",
	'ß': "ss", 'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a",
	'å': "a", 'æ': "ae", 'ç': "c", 'è': "e", 'é': "e", 'ê': "e",
	'ë': "e", 'ì': "i", 'í': "i", 'î': "i", 'ï': "i", 'ð': "d",
	'ñ': "n", 'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o",
	'ø': "o", 'ù': "u", 'ú': "u", 'û': "u", 'ü': "u", 'ý': "y",
	'þ': "th", 'ÿ': "y", 'Š': "S", 'š': "s", 'Ž': "Z", 'ž': "z",
	'ľ': "l", 'ć': "c", 'č': "c", 'ř': "r", 'ň': "n", 'ť': "t", 'ď': "d",

	'°': "o", // degree
	'º': "",  // masculine ordinal
	'ª': "",  // feminine ordinal
	'`': "",
	'´': "",

	'"': "",
	'„': "",
	'‚': "",
	'\'': " ",

	'–': "-",
	'—': "-",
	'…': "...",
	'•': "*",
	'·': ".",

	// spacing diacritics
	'¸': "",
	'¨': "",
	'˚': "o",
	'˙': "",
	'ˇ': "",
	'˘': "",
	'¯': "",
	'˛': "",
	'˝': "",
}

// Defaults returns a copy of the compiled-in table.
func Defaults() types.CharacterMap {
	return defaultTable.Clone()
}
