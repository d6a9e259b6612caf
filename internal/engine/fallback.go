package engine

import (
	"fmt"
	"strings"

	"github.com/jonathan/property-reporter/internal/matching"
	"github.com/jonathan/property-reporter/internal/types"
)

// chapterTitles are the fixed Dutch chapter titles used by the template
// fallback.
var chapterTitles = map[int]string{
	0:  "Overzicht van de woning",
	1:  "Locatie en omgeving",
	2:  "Marktpositie en vraagprijs",
	3:  "Bouw en staat van onderhoud",
	4:  "Energie en duurzaamheid",
	5:  "Indeling en leefruimte",
	6:  "Buitenruimte",
	7:  "Voorzieningen en bereikbaarheid",
	8:  "Match met uw woonwensen",
	9:  "Financiële analyse",
	10: "Juridische aspecten",
	11: "Risico's en onderhoud",
	12: "Conclusie en advies",
	13: "Media",
}

// fallbackNarrative builds the deterministic, template-based narrative used
// when no provider is configured. It only echoes context fields that are
// present: no arithmetic, no inference. This path never fails.
func fallbackNarrative(chapterID int, pctx types.PropertyContext) *types.GeneratedNarrative {
	switch chapterID {
	case 4:
		return energyFallback(pctx)
	case 8:
		return preferenceFallback(pctx)
	default:
		return genericFallback(chapterID, pctx)
	}
}

// genericFallback renders the chapter's known context values into a fixed
// Dutch template.
func genericFallback(chapterID int, pctx types.PropertyContext) *types.GeneratedNarrative {
	subset := contextSubset(chapterID, pctx)

	var facts []string
	var missing []string
	for _, key := range subset.SortedKeys() {
		facts = append(facts, fmt.Sprintf("%s: %s", key, subset.GetString(key)))
	}
	if keys, ok := chapterContextKeys[chapterID]; ok {
		for _, key := range keys {
			if !pctx.Has(key) {
				missing = append(missing, key)
			}
		}
	}

	factBlock := "Voor dit hoofdstuk zijn geen gegevens beschikbaar in de advertentie."
	if len(facts) > 0 {
		factBlock = "Uit de advertentie zijn de volgende gegevens bekend: " + strings.Join(facts, "; ") + "."
	}

	title := chapterTitles[chapterID]
	return &types.GeneratedNarrative{
		Title: title,
		Intro: fmt.Sprintf("Dit hoofdstuk behandelt het onderwerp \"%s\" op basis van de beschikbare advertentiegegevens.", strings.ToLower(title)),
		MainAnalysis: factBlock + " Deze samenvatting is opgesteld zonder AI-ondersteuning en bevat uitsluitend " +
			"gegevens die letterlijk in de advertentie staan. Voor een diepgaande duiding van deze gegevens kan een " +
			"AI-provider worden geconfigureerd, of kan een bouwkundig adviseur worden geraadpleegd.",
		Comparison: types.PersonaComparison{
			CombinedAdvice: "Bespreek samen hoe zwaar dit onderwerp voor jullie weegt.",
		},
		Strengths:  []string{"Gebaseerd op letterlijke advertentiegegevens"},
		Advice:     []string{"Verifieer deze gegevens tijdens de bezichtiging."},
		Conclusion: "Beoordeel dit onderwerp aan de hand van de genoemde gegevens en een eigen bezichtiging.",
		Metadata: types.NarrativeMetadata{
			Confidence:  0.3,
			MissingVars: missing,
		},
	}
}

// energyFallback applies fixed, label-driven rules. The branching is purely
// on the energy label value; build year is echoed but never used to derive
// conclusions.
func energyFallback(pctx types.PropertyContext) *types.GeneratedNarrative {
	label := strings.ToUpper(strings.TrimSpace(pctx.GetString(types.KeyEnergyLabel)))
	buildYear := pctx.GetString(types.KeyBuildYear)

	yearNote := ""
	if buildYear != "" {
		yearNote = fmt.Sprintf(" Het bouwjaar van de woning is %s.", buildYear)
	}

	n := &types.GeneratedNarrative{
		Title:      chapterTitles[4],
		Comparison: types.PersonaComparison{CombinedAdvice: "Bespreek samen welk energiekostenniveau acceptabel is."},
		Metadata:   types.NarrativeMetadata{Confidence: 0.3},
	}

	switch {
	case strings.HasPrefix(label, "A") || label == "B":
		n.Intro = fmt.Sprintf("Deze woning heeft energielabel %s en behoort daarmee tot de energiezuinige woningen.", label)
		n.MainAnalysis = fmt.Sprintf("Het geregistreerde energielabel is %s.", label) + yearNote +
			" Een gunstig energielabel betekent in de regel lagere maandelijkse energielasten en een beter wooncomfort." +
			" Er zijn op basis van het label geen grote verduurzamingsingrepen nodig."
		n.Strengths = []string{fmt.Sprintf("Gunstig energielabel %s", label)}
		n.Advice = []string{"Controleer de geldigheid van het energielabel bij de overdracht."}
		n.Conclusion = "Op energiegebied scoort deze woning goed."
	case label == "E" || label == "F" || label == "G":
		n.Intro = fmt.Sprintf("Deze woning heeft energielabel %s. Houd rekening met een investering in verduurzaming.", label)
		n.MainAnalysis = fmt.Sprintf("Het geregistreerde energielabel is %s.", label) + yearNote +
			" Een ongunstig energielabel betekent doorgaans hogere energielasten en wijst op beperkte isolatie of een" +
			" verouderde installatie. Verduurzaming vraagt een investering, maar verlaagt de maandlasten en verhoogt het wooncomfort."
		n.Strengths = []string{"Verduurzamingspotentieel aanwezig"}
		n.Advice = []string{
			"Overweeg het verbeteren van de isolatie van dak, gevel en vloer.",
			"Vraag een maatwerkadvies verduurzaming aan bij een erkend adviseur.",
		}
		n.Conclusion = "Reserveer budget voor verduurzaming en betrek dit in de biedingsstrategie."
	case label != "":
		n.Intro = fmt.Sprintf("Deze woning heeft energielabel %s.", label)
		n.MainAnalysis = fmt.Sprintf("Het geregistreerde energielabel is %s.", label) + yearNote +
			" Dit is een gemiddeld label: de woning is niet uitgesproken zuinig, maar grote ingrepen zijn op basis van" +
			" het label alleen niet direct aan de orde."
		n.Strengths = []string{"Energielabel bekend"}
		n.Advice = []string{"Bekijk welke verduurzamingsstappen voor deze woning rendabel zijn."}
		n.Conclusion = "Een gemiddeld energielabel; verduurzaming is optioneel maar kan lonen."
	default:
		n.Intro = "Het energielabel van deze woning is niet bekend uit de advertentie."
		n.MainAnalysis = "Er is geen energielabel aangetroffen in de advertentiegegevens." + yearNote +
			" Zonder label is geen uitspraak te doen over de energiezuinigheid van de woning."
		n.Strengths = []string{"Geen"}
		n.Advice = []string{"Vraag het energielabel op bij de verkopend makelaar."}
		n.Conclusion = "Het energielabel ontbreekt; vraag dit op voordat u een bod uitbrengt."
		n.Metadata.MissingVars = []string{types.KeyEnergyLabel}
	}

	return n
}

// preferenceFallback scores both persona profiles against the listing with
// the deterministic matcher and reports the results verbatim.
func preferenceFallback(pctx types.PropertyContext) *types.GeneratedNarrative {
	profileA, okA := profileFromContext(pctx, types.KeyPreferencesA)
	profileB, okB := profileFromContext(pctx, types.KeyPreferencesB)

	if !okA && !okB {
		return genericFallback(8, pctx)
	}

	description := pctx.GetString(types.KeyDescription)
	features := pctx.GetStringSlice(types.KeyFeatures)

	resultA := matching.MatchProfile(profileA, description, features)
	resultB := matching.MatchProfile(profileB, description, features)
	combined := matching.CombinedScore(resultA, resultB)

	return &types.GeneratedNarrative{
		Title: chapterTitles[8],
		Intro: fmt.Sprintf("De woning is vergeleken met de woonwensen van beide kopers. De gecombineerde match is %.0f%%.", combined),
		MainAnalysis: fmt.Sprintf(
			"Persona A scoort %.0f%%. Gevonden wensen: %s. Niet gevonden: %s. "+
				"Persona B scoort %.0f%%. Gevonden wensen: %s. Niet gevonden: %s. "+
				"De vergelijking is uitgevoerd op de advertentietekst en de kenmerkenlijst; een wens telt als gevonden "+
				"wanneer deze letterlijk in de kenmerken of de omschrijving voorkomt.",
			resultA.MatchScore, joinOrNone(resultA.Matches), joinOrNone(resultA.Misses),
			resultB.MatchScore, joinOrNone(resultB.Matches), joinOrNone(resultB.Misses)),
		Comparison: types.PersonaComparison{
			PersonaA:       fmt.Sprintf("Match %.0f%% (%d van %d wensen gevonden)", resultA.MatchScore, len(resultA.Matches), len(resultA.Matches)+len(resultA.Misses)),
			PersonaB:       fmt.Sprintf("Match %.0f%% (%d van %d wensen gevonden)", resultB.MatchScore, len(resultB.Matches), len(resultB.Matches)+len(resultB.Misses)),
			CombinedAdvice: "Bespreek de niet gevonden wensen: soms biedt de woning ze wel, maar noemt de advertentie ze niet.",
		},
		Strengths:  []string{"Deterministische vergelijking van woonwensen met de advertentie"},
		Advice:     []string{"Controleer de niet gevonden wensen tijdens de bezichtiging."},
		Conclusion: fmt.Sprintf("De gecombineerde match van %.0f%% is een indicatie; de bezichtiging blijft doorslaggevend.", combined),
		Metadata:   types.NarrativeMetadata{Confidence: 0.5},
	}
}

// joinOrNone joins terms for display, with a Dutch placeholder for an empty
// list.
func joinOrNone(terms []string) string {
	if len(terms) == 0 {
		return "geen"
	}
	return strings.Join(terms, ", ")
}
