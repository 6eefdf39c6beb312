// internal/taxonomy/table.go
package taxonomy

// rawMappings is the static position taxonomy: lower-cased raw title strings
// mapped to a standardized title and category. Built into the lookup
// structures once at process start, never mutated afterwards.
var rawMappings = map[string]Mapping{
	// --- Deck ---
	"captain":                 {"Captain", CategoryDeck},
	"master":                  {"Captain", CategoryDeck},
	"skipper":                 {"Captain", CategoryDeck},
	"relief captain":          {"Relief Captain", CategoryDeck},
	"chase boat captain":      {"Chase Boat Captain", CategoryDeck},
	"first officer":           {"First Officer", CategoryDeck},
	"chief officer":           {"Chief Officer", CategoryDeck},
	"2nd officer":             {"Second Officer", CategoryDeck},
	"second officer":          {"Second Officer", CategoryDeck},
	"3rd officer":             {"Third Officer", CategoryDeck},
	"third officer":           {"Third Officer", CategoryDeck},
	"officer of the watch":    {"Officer of the Watch", CategoryDeck},
	"oow":                     {"Officer of the Watch", CategoryDeck},
	"bosun":                   {"Bosun", CategoryDeck},
	"boatswain":               {"Bosun", CategoryDeck},
	"lead deckhand":           {"Lead Deckhand", CategoryDeck},
	"senior deckhand":         {"Lead Deckhand", CategoryDeck},
	"deckhand":                {"Deckhand", CategoryDeck},
	"deck hand":               {"Deckhand", CategoryDeck},
	"junior deckhand":         {"Junior Deckhand", CategoryDeck},
	"deck/engineer":           {"Deck/Engineer", CategoryDeck},
	"deckhand/engineer":       {"Deck/Engineer", CategoryDeck},
	"deck stew":               {"Deck/Stew", CategoryDeck},
	"deck/stew":               {"Deck/Stew", CategoryDeck},
	"mate":                    {"Mate", CategoryDeck},
	"first mate":              {"First Mate", CategoryDeck},
	"dive instructor":         {"Dive Instructor", CategoryDeck},
	"divemaster":              {"Divemaster", CategoryDeck},
	"watersports instructor":  {"Watersports Instructor", CategoryDeck},
	"tender driver":           {"Tender Driver", CategoryDeck},

	// --- Interior ---
	"chief stewardess":        {"Chief Stewardess", CategoryInterior},
	"chief stew":              {"Chief Stewardess", CategoryInterior},
	"head of interior":        {"Head of Interior", CategoryInterior},
	"interior manager":        {"Head of Interior", CategoryInterior},
	"2nd stewardess":          {"Second Stewardess", CategoryInterior},
	"second stewardess":       {"Second Stewardess", CategoryInterior},
	"2nd stew":                {"Second Stewardess", CategoryInterior},
	"3rd stewardess":          {"Third Stewardess", CategoryInterior},
	"third stewardess":        {"Third Stewardess", CategoryInterior},
	"3rd stew":                {"Third Stewardess", CategoryInterior},
	"junior stewardess":       {"Junior Stewardess", CategoryInterior},
	"junior stew":             {"Junior Stewardess", CategoryInterior},
	"sole stewardess":         {"Sole Stewardess", CategoryInterior},
	"stewardess":              {"Stewardess", CategoryInterior},
	"stewardess/masseuse":     {"Stewardess/Masseuse", CategoryInterior},
	"stew/masseuse":           {"Stewardess/Masseuse", CategoryInterior},
	"stewardess/cook":         {"Stewardess/Cook", CategoryInterior},
	"stew/cook":               {"Stewardess/Cook", CategoryInterior},
	"cook/stew":               {"Stewardess/Cook", CategoryInterior},
	"stew":                    {"Stewardess", CategoryInterior},
	"steward":                 {"Steward", CategoryInterior},
	"laundry stewardess":      {"Laundry Stewardess", CategoryInterior},
	"laundry":                 {"Laundry Stewardess", CategoryInterior},
	"service stewardess":      {"Service Stewardess", CategoryInterior},
	"housekeeping stewardess": {"Housekeeping Stewardess", CategoryInterior},
	"purser":                  {"Purser", CategoryInterior},
	"interior crew":           {"Interior Crew", CategoryInterior},
	"butler":                  {"Butler", CategoryInterior},
	"head butler":             {"Head Butler", CategoryInterior},
	"barista":                 {"Barista", CategoryInterior},
	"bartender":               {"Bartender", CategoryInterior},
	"sommelier":               {"Sommelier", CategoryInterior},
	"hostess":                 {"Hostess", CategoryInterior},
	"cabin crew":              {"Interior Crew", CategoryInterior},

	// --- Engineering ---
	"chief engineer":      {"Chief Engineer", CategoryEngineering},
	"2nd engineer":        {"Second Engineer", CategoryEngineering},
	"second engineer":     {"Second Engineer", CategoryEngineering},
	"3rd engineer":        {"Third Engineer", CategoryEngineering},
	"third engineer":      {"Third Engineer", CategoryEngineering},
	"sole engineer":       {"Sole Engineer", CategoryEngineering},
	"junior engineer":     {"Junior Engineer", CategoryEngineering},
	"engineer":            {"Engineer", CategoryEngineering},
	"eto":                 {"ETO", CategoryEngineering},
	"electro technical officer": {"ETO", CategoryEngineering},
	"av/it officer":       {"AV/IT Officer", CategoryEngineering},
	"av/it engineer":      {"AV/IT Officer", CategoryEngineering},
	"electrician":         {"Electrician", CategoryEngineering},
	"motorman":            {"Motorman", CategoryEngineering},
	"oiler":               {"Motorman", CategoryEngineering},

	// --- Galley ---
	"head chef":       {"Head Chef", CategoryGalley},
	"executive chef":  {"Head Chef", CategoryGalley},
	"chef":            {"Chef", CategoryGalley},
	"sous chef":       {"Sous Chef", CategoryGalley},
	"2nd chef":        {"Sous Chef", CategoryGalley},
	"second chef":     {"Sous Chef", CategoryGalley},
	"solo chef":       {"Sole Chef", CategoryGalley},
	"sole chef":       {"Sole Chef", CategoryGalley},
	"crew chef":       {"Crew Chef", CategoryGalley},
	"cook":            {"Cook", CategoryGalley},
	"ships cook":      {"Cook", CategoryGalley},
	"pastry chef":     {"Pastry Chef", CategoryGalley},
	"private chef":    {"Private Chef", CategoryGalley},
	"personal chef":   {"Private Chef", CategoryGalley},
	"galley hand":     {"Galley Hand", CategoryGalley},
	"chef/stew":       {"Chef/Stew", CategoryGalley},
	"chef de partie":  {"Chef de Partie", CategoryGalley},

	// --- Villa / Estate ---
	"estate manager":        {"Estate Manager", CategoryVilla},
	"villa manager":         {"Villa Manager", CategoryVilla},
	"house manager":         {"House Manager", CategoryVilla},
	"household manager":     {"House Manager", CategoryVilla},
	"property manager":      {"Property Manager", CategoryVilla},
	"housekeeper":           {"Housekeeper", CategoryVilla},
	"head housekeeper":      {"Head Housekeeper", CategoryVilla},
	"executive housekeeper": {"Head Housekeeper", CategoryVilla},
	"houseman":              {"Houseman", CategoryVilla},
	"gardener":              {"Gardener", CategoryVilla},
	"groundskeeper":         {"Groundskeeper", CategoryVilla},
	"caretaker":             {"Caretaker", CategoryVilla},
	"couple":                {"Domestic Couple", CategoryVilla},
	"domestic couple":       {"Domestic Couple", CategoryVilla},
	"chauffeur":             {"Chauffeur", CategoryVilla},
	"driver":                {"Chauffeur", CategoryVilla},
	"personal assistant":    {"Personal Assistant", CategoryVilla},
	"pa":                    {"Personal Assistant", CategoryVilla},
	"valet":                 {"Valet", CategoryVilla},
	"lady's maid":           {"Lady's Maid", CategoryVilla},

	// --- Childcare ---
	"nanny":              {"Nanny", CategoryChildcare},
	"governess":          {"Governess", CategoryChildcare},
	"governor":           {"Governor", CategoryChildcare},
	"maternity nurse":    {"Maternity Nurse", CategoryChildcare},
	"norland nanny":      {"Norland Nanny", CategoryChildcare},
	"tutor":              {"Tutor", CategoryChildcare},
	"nanny/stew":         {"Nanny/Stew", CategoryChildcare},
	"stew/nanny":         {"Nanny/Stew", CategoryChildcare},
	"au pair":            {"Au Pair", CategoryChildcare},

	// --- Security ---
	"security officer":            {"Security Officer", CategorySecurity},
	"security":                    {"Security Officer", CategorySecurity},
	"cpo":                         {"Close Protection Officer", CategorySecurity},
	"close protection officer":    {"Close Protection Officer", CategorySecurity},
	"close protection":            {"Close Protection Officer", CategorySecurity},
	"bodyguard":                   {"Close Protection Officer", CategorySecurity},
	"sso":                         {"Ship Security Officer", CategorySecurity},
	"ship security officer":       {"Ship Security Officer", CategorySecurity},

	// --- Medical ---
	"nurse":            {"Nurse", CategoryMedical},
	"ship's nurse":     {"Nurse", CategoryMedical},
	"medic":            {"Medic", CategoryMedical},
	"paramedic":        {"Paramedic", CategoryMedical},
	"doctor":           {"Doctor", CategoryMedical},
	"physician":        {"Doctor", CategoryMedical},
	"medical officer":  {"Medical Officer", CategoryMedical},

	// --- Management / Shore ---
	"yacht manager":        {"Yacht Manager", CategoryManagement},
	"fleet manager":        {"Fleet Manager", CategoryManagement},
	"crew manager":         {"Crew Manager", CategoryManagement},
	"operations manager":   {"Operations Manager", CategoryManagement},
	"charter manager":      {"Charter Manager", CategoryManagement},
	"office manager":       {"Office Manager", CategoryManagement},
	"shore manager":        {"Shore Manager", CategoryManagement},
	"project manager":      {"Project Manager", CategoryManagement},
	"chief of staff":       {"Chief of Staff", CategoryManagement},
	"family office manager": {"Family Office Manager", CategoryManagement},

	// --- Wellness ---
	"masseuse":             {"Masseuse", CategoryWellness},
	"massage therapist":    {"Massage Therapist", CategoryWellness},
	"spa therapist":        {"Spa Therapist", CategoryWellness},
	"spa manager":          {"Spa Manager", CategoryWellness},
	"beautician":           {"Beautician", CategoryWellness},
	"hairdresser":          {"Hairdresser", CategoryWellness},
	"hair stylist":         {"Hairdresser", CategoryWellness},
	"personal trainer":     {"Personal Trainer", CategoryWellness},
	"fitness instructor":   {"Fitness Instructor", CategoryWellness},
	"yoga instructor":      {"Yoga Instructor", CategoryWellness},
	"pilates instructor":   {"Pilates Instructor", CategoryWellness},
	"physiotherapist":      {"Physiotherapist", CategoryWellness},
	"physio":               {"Physiotherapist", CategoryWellness},

	// --- Other ---
	"crew":            {"Crew", CategoryOther},
	"daywork":         {"Dayworker", CategoryOther},
	"dayworker":       {"Dayworker", CategoryOther},
	"delivery crew":   {"Delivery Crew", CategoryOther},
	"relief crew":     {"Relief Crew", CategoryOther},
	"photographer":    {"Photographer", CategoryOther},
	"videographer":    {"Videographer", CategoryOther},
	"pilot":           {"Pilot", CategoryOther},
	"helicopter pilot": {"Helicopter Pilot", CategoryOther},
}
