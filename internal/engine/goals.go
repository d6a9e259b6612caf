package engine

import (
	"fmt"

	"github.com/jonathan/property-reporter/internal/types"
)

// MediaChapterID is the media-only chapter; it carries photos and floor
// plans and is exempt from narrative generation.
const MediaChapterID = 13

// chapterGoals is the static registry of per-chapter focus statements,
// consumed only at prompt-build time. Never mutated at runtime.
var chapterGoals = map[int]string{
	0:  "Complete property overview: summarize the listing as a whole, including the core facts (address, price, type). This is the only chapter that may echo raw listing identifiers.",
	1:  "Location and neighborhood only: what living at this address means in terms of surroundings, not the property itself.",
	2:  "Market position and asking price only: how the asking price relates to the property's characteristics. No mortgage or financing advice.",
	3:  "Construction and structural condition only: build year, construction type, visible state of maintenance.",
	4:  "Energy performance and sustainability only: energy label, insulation, heating, and what they mean for future energy costs.",
	5:  "Layout and living space only: floor area, room count, and how the space is organized.",
	6:  "Outdoor space only: garden, balcony, plot, orientation.",
	7:  "Amenities and accessibility only: facilities, transport, and daily conveniences around the property.",
	8:  "Preference matching only: how the property scores against both buyers' stated and hidden priorities.",
	9:  "Financial analysis only: recurring ownership costs and value indicators (VvE dues, leasehold, WOZ). No price negotiation advice.",
	10: "Legal and ownership aspects only: VvE, leasehold (erfpacht), ownership form, and their practical consequences.",
	11: "Risks and maintenance outlook only: what may need attention or budget in the coming years.",
	12: "Final conclusion and advice: weigh the preceding analyses into a recommendation for these buyers.",
}

// ChapterGoal returns the focus statement for a narrative chapter.
func ChapterGoal(chapterID int) (string, error) {
	goal, ok := chapterGoals[chapterID]
	if !ok {
		return "", fmt.Errorf("no chapter goal registered for chapter %d", chapterID)
	}
	return goal, nil
}

// chapterContextKeys restricts which context values each chapter's user
// prompt may include. Chapter 0 is absent: it receives the full context.
// Core identifiers (address, asking price) appear only where the chapter is
// specifically about them.
var chapterContextKeys = map[int][]string{
	1:  {types.KeyAddress, types.KeyCity},
	2:  {types.KeyAskingPrice, types.KeyWOZValue, types.KeyLivingArea, types.KeyPropertyType, types.KeyCity},
	3:  {types.KeyBuildYear, types.KeyPropertyType, types.KeyInsulation, types.KeyHeating},
	4:  {types.KeyEnergyLabel, types.KeyBuildYear, types.KeyInsulation, types.KeyHeating},
	5:  {types.KeyLivingArea, types.KeyRooms, types.KeyBedrooms, types.KeyPlotArea},
	6:  {types.KeyGarden, types.KeyPlotArea, types.KeyFeatures},
	7:  {types.KeyCity, types.KeyFeatures},
	8:  {types.KeyDescription, types.KeyFeatures},
	9:  {types.KeyAskingPrice, types.KeyWOZValue, types.KeyVVE, types.KeyErfpacht},
	10: {types.KeyVVE, types.KeyErfpacht, types.KeyPropertyType},
	11: {types.KeyBuildYear, types.KeyHeating, types.KeyInsulation, types.KeyVVE},
	12: {types.KeyPropertyType, types.KeyBuildYear, types.KeyEnergyLabel, types.KeyLivingArea, types.KeyFeatures, types.KeyDescription},
}

// contextSubset returns the context restricted to what the chapter may see.
// Chapter 0 gets everything; preference profiles are never included here
// (they travel in the system prompt).
func contextSubset(chapterID int, pctx types.PropertyContext) types.PropertyContext {
	if chapterID == 0 {
		subset := make(types.PropertyContext, len(pctx))
		for k, v := range pctx {
			if k == types.KeyPreferencesA || k == types.KeyPreferencesB {
				continue
			}
			subset[k] = v
		}
		return subset
	}

	keys, ok := chapterContextKeys[chapterID]
	if !ok {
		return types.PropertyContext{}
	}
	subset := make(types.PropertyContext, len(keys))
	for _, k := range keys {
		if pctx.Has(k) {
			subset[k] = pctx[k]
		}
	}
	return subset
}
