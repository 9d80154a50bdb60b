package vocab

import (
	"slices"

	"go-mrz-generator/mrz"
)

var defaultGivenNames = []string{
	"ANNA", "MARIA", "EMMA", "SOFIA", "OLIVIA", "MIA", "LUCIA", "CHLOE", "NORA", "ELIF",
	"FATIMA", "AISHA", "MEI", "YUKI", "PRIYA", "INGRID", "ASTRID", "ZOE", "LEA", "SARA",
	"JAMES", "OSCAR", "CHARLES", "EDWARD", "LUCAS", "NOAH", "LIAM", "MATEO", "HUGO", "LUCA",
	"MOHAMMED", "AHMED", "WEI", "HIROSHI", "ARJUN", "OLAF", "LARS", "PIETER", "JAN", "MILOS",
	"JEAN PAUL", "MARIE CLAIRE", "ANA SOFIA", "JOSE", "DIEGO", "KOFI", "AMARA", "IVAN", "OLGA", "TOMAS",
}

var defaultSurnames = []string{
	"ERIKSSON", "SANDERSON", "SMITH", "JOHNSON", "BROWN", "GARCIA", "MARTINEZ", "MULLER", "SCHMIDT", "DUBOIS",
	"ROSSI", "BIANCHI", "NOVAK", "KOWALSKI", "NIELSEN", "JANSEN", "DE VRIES", "VAN DER BERG", "BAKKER", "VISSER",
	"NGUYEN", "TRAN", "WANG", "LI", "ZHANG", "TANAKA", "SATO", "KIM", "PARK", "SINGH",
	"PATEL", "KHAN", "YILMAZ", "KAYA", "IVANOV", "PETROV", "JOVANOVIC", "HORVATH", "OKAFOR", "MENSAH",
	"DA SILVA", "DOS SANTOS", "FERNANDEZ", "LOPEZ", "GONZALEZ", "HERNANDEZ", "OCONNOR", "MACDONALD", "ANDERSEN", "LAURENT",
}

// Germany is written D in the MRZ and padded to D<<.
var defaultNationalities = []string{
	"NLD", "BEL", "D", "FRA", "ESP", "ITA", "PRT", "AUT", "POL", "SWE",
	"DNK", "FIN", "IRL", "GRC", "CZE", "HUN", "ROU", "GBR", "USA", "CAN",
	"AUS", "NZL", "JPN", "KOR", "CHN", "IND", "BRA", "ARG", "MEX", "ZAF",
	"NGA", "GHA", "EGY", "TUR", "UKR", "NOR", "CHE", "ISL", "SGP", "UTO",
}

// Default returns the built-in pools, already normalized.
func Default() mrz.Vocabulary {
	v, err := Prepare(mrz.Vocabulary{
		GivenNames:    slices.Clone(defaultGivenNames),
		Surnames:      slices.Clone(defaultSurnames),
		Nationalities: slices.Clone(defaultNationalities),
	})
	if err != nil {
		panic("vocab: built-in pools are invalid: " + err.Error())
	}
	return v
}
