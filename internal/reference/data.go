package reference

// USPS Publication 28, appendix C1: primary street suffix names and their
// standard abbreviations. TRAILER is left out because it is also a
// secondary unit designator.
var defaultStreetTypes = []StreetType{
	{"alley", "aly"}, {"anex", "anx"}, {"arcade", "arc"}, {"avenue", "ave"},
	{"bayou", "byu"}, {"beach", "bch"}, {"bend", "bnd"}, {"bluff", "blf"},
	{"bluffs", "blfs"}, {"bottom", "btm"}, {"boulevard", "blvd"}, {"branch", "br"},
	{"bridge", "brg"}, {"brook", "brk"}, {"brooks", "brks"}, {"burg", "bg"},
	{"burgs", "bgs"}, {"bypass", "byp"}, {"camp", "cp"}, {"canyon", "cyn"},
	{"cape", "cpe"}, {"causeway", "cswy"}, {"center", "ctr"}, {"centers", "ctrs"},
	{"circle", "cir"}, {"circles", "cirs"}, {"cliff", "clf"}, {"cliffs", "clfs"},
	{"club", "clb"}, {"common", "cmn"}, {"commons", "cmns"}, {"corner", "cor"},
	{"corners", "cors"}, {"course", "crse"}, {"court", "ct"}, {"courts", "cts"},
	{"cove", "cv"}, {"coves", "cvs"}, {"creek", "crk"}, {"crescent", "cres"},
	{"crest", "crst"}, {"crossing", "xing"}, {"crossroad", "xrd"}, {"crossroads", "xrds"},
	{"curve", "curv"}, {"dale", "dl"}, {"dam", "dm"}, {"divide", "dv"},
	{"drive", "dr"}, {"drives", "drs"}, {"estate", "est"}, {"estates", "ests"},
	{"expressway", "expy"}, {"extension", "ext"}, {"extensions", "exts"}, {"fall", "fall"},
	{"falls", "fls"}, {"ferry", "fry"}, {"field", "fld"}, {"fields", "flds"},
	{"flat", "flt"}, {"flats", "flts"}, {"ford", "frd"}, {"fords", "frds"},
	{"forest", "frst"}, {"forge", "frg"}, {"forges", "frgs"}, {"fork", "frk"},
	{"forks", "frks"}, {"fort", "ft"}, {"freeway", "fwy"}, {"garden", "gdn"},
	{"gardens", "gdns"}, {"gateway", "gtwy"}, {"glen", "gln"}, {"glens", "glns"},
	{"green", "grn"}, {"greens", "grns"}, {"grove", "grv"}, {"groves", "grvs"},
	{"harbor", "hbr"}, {"harbors", "hbrs"}, {"haven", "hvn"}, {"heights", "hts"},
	{"highway", "hwy"}, {"hill", "hl"}, {"hills", "hls"}, {"hollow", "holw"},
	{"inlet", "inlt"}, {"island", "is"}, {"islands", "iss"}, {"isle", "isle"},
	{"junction", "jct"}, {"junctions", "jcts"}, {"key", "ky"}, {"keys", "kys"},
	{"knoll", "knl"}, {"knolls", "knls"}, {"lake", "lk"}, {"lakes", "lks"},
	{"land", "land"}, {"landing", "lndg"}, {"lane", "ln"}, {"light", "lgt"},
	{"lights", "lgts"}, {"loaf", "lf"}, {"lock", "lck"}, {"locks", "lcks"},
	{"lodge", "ldg"}, {"loop", "loop"}, {"mall", "mall"}, {"manor", "mnr"},
	{"manors", "mnrs"}, {"meadow", "mdw"}, {"meadows", "mdws"}, {"mews", "mews"},
	{"mill", "ml"}, {"mills", "mls"}, {"mission", "msn"}, {"motorway", "mtwy"},
	{"mount", "mt"}, {"mountain", "mtn"}, {"mountains", "mtns"}, {"neck", "nck"},
	{"orchard", "orch"}, {"oval", "oval"}, {"overpass", "opas"}, {"park", "park"},
	{"parks", "park"}, {"parkway", "pkwy"}, {"parkways", "pkwy"}, {"pass", "pass"},
	{"passage", "psge"}, {"path", "path"}, {"pike", "pike"}, {"pine", "pne"},
	{"pines", "pnes"}, {"place", "pl"}, {"plain", "pln"}, {"plains", "plns"},
	{"plaza", "plz"}, {"point", "pt"}, {"points", "pts"}, {"port", "prt"},
	{"ports", "prts"}, {"prairie", "pr"}, {"radial", "radl"}, {"ramp", "ramp"},
	{"ranch", "rnch"}, {"rapid", "rpd"}, {"rapids", "rpds"}, {"rest", "rst"},
	{"ridge", "rdg"}, {"ridges", "rdgs"}, {"river", "riv"}, {"road", "rd"},
	{"roads", "rds"}, {"route", "rte"}, {"row", "row"}, {"rue", "rue"},
	{"run", "run"}, {"shoal", "shl"}, {"shoals", "shls"}, {"shore", "shr"},
	{"shores", "shrs"}, {"skyway", "skwy"}, {"spring", "spg"}, {"springs", "spgs"},
	{"spur", "spur"}, {"spurs", "spur"}, {"square", "sq"}, {"squares", "sqs"},
	{"station", "sta"}, {"stravenue", "stra"}, {"stream", "strm"}, {"street", "st"},
	{"streets", "sts"}, {"summit", "smt"}, {"terrace", "ter"}, {"throughway", "trwy"},
	{"trace", "trce"}, {"track", "trak"}, {"trafficway", "trfy"}, {"trail", "trl"},
	{"tunnel", "tunl"}, {"turnpike", "tpke"}, {"underpass", "upas"}, {"union", "un"},
	{"unions", "uns"}, {"valley", "vly"}, {"valleys", "vlys"}, {"viaduct", "via"},
	{"view", "vw"}, {"views", "vws"}, {"village", "vlg"}, {"villages", "vlgs"},
	{"ville", "vl"}, {"vista", "vis"}, {"walk", "walk"}, {"walks", "walk"},
	{"wall", "wall"}, {"way", "way"}, {"ways", "ways"}, {"well", "wl"},
	{"wells", "wls"},
}

var defaultDirectionals = []Directional{
	{"north", "N"}, {"northeast", "NE"}, {"east", "E"}, {"southeast", "SE"},
	{"south", "S"}, {"southwest", "SW"}, {"west", "W"}, {"northwest", "NW"},
}

// Secondary unit designators (USPS Publication 28, appendix C2). Patterns
// are case-insensitive and matched against a whole token.
var defaultNumberedUnits = []UnitPrefix{
	{`ap(?:ar)?t(?:me?nt)?`, "Apt"},
	{`bu?i?ldi?n?g`, "Bldg"},
	{`dep(?:artmen)?t`, "Dept"},
	{`fl(?:oor)?`, "Fl"},
	{`ha?nga?r`, "Hngr"},
	{`lo?t`, "Lot"},
	{`pier`, "Pier"},
	{`r(?:oo)?m`, "Rm"},
	{`slip`, "Slip"},
	{`spa?ce?`, "Spc"},
	{`stop`, "Stop"},
	{`su?i?te`, "Ste"},
	{`tra?i?le?r`, "Trlr"},
	{`uni?t`, "Unit"},
}

var defaultUnnumberedUnits = []UnitPrefix{
	{`ba?se?me?n?t`, "Bsmt"},
	{`fro?nt`, "Frnt"},
	{`lo?bby`, "Lbby"},
	{`lowe?r`, "Lowr"},
	{`off?i?ce?`, "Ofc"},
	{`pe?n?t?ho?u?s?e?`, "PH"},
	{`rear`, "Rear"},
	{`side`, "Side"},
	{`uppe?r`, "Uppr"},
}

var defaultStates = []State{
	{"Alabama", "AL", "01"}, {"Alaska", "AK", "02"}, {"Arizona", "AZ", "04"},
	{"Arkansas", "AR", "05"}, {"California", "CA", "06"}, {"Colorado", "CO", "08"},
	{"Connecticut", "CT", "09"}, {"Delaware", "DE", "10"},
	{"District of Columbia", "DC", "11"}, {"Florida", "FL", "12"},
	{"Georgia", "GA", "13"}, {"Hawaii", "HI", "15"}, {"Idaho", "ID", "16"},
	{"Illinois", "IL", "17"}, {"Indiana", "IN", "18"}, {"Iowa", "IA", "19"},
	{"Kansas", "KS", "20"}, {"Kentucky", "KY", "21"}, {"Louisiana", "LA", "22"},
	{"Maine", "ME", "23"}, {"Maryland", "MD", "24"}, {"Massachusetts", "MA", "25"},
	{"Michigan", "MI", "26"}, {"Minnesota", "MN", "27"}, {"Mississippi", "MS", "28"},
	{"Missouri", "MO", "29"}, {"Montana", "MT", "30"}, {"Nebraska", "NE", "31"},
	{"Nevada", "NV", "32"}, {"New Hampshire", "NH", "33"}, {"New Jersey", "NJ", "34"},
	{"New Mexico", "NM", "35"}, {"New York", "NY", "36"},
	{"North Carolina", "NC", "37"}, {"North Dakota", "ND", "38"}, {"Ohio", "OH", "39"},
	{"Oklahoma", "OK", "40"}, {"Oregon", "OR", "41"}, {"Pennsylvania", "PA", "42"},
	{"Rhode Island", "RI", "44"}, {"South Carolina", "SC", "45"},
	{"South Dakota", "SD", "46"}, {"Tennessee", "TN", "47"}, {"Texas", "TX", "48"},
	{"Utah", "UT", "49"}, {"Vermont", "VT", "50"}, {"Virginia", "VA", "51"},
	{"Washington", "WA", "53"}, {"West Virginia", "WV", "54"},
	{"Wisconsin", "WI", "55"}, {"Wyoming", "WY", "56"},
	{"American Samoa", "AS", "60"}, {"Guam", "GU", "66"},
	{"Northern Mariana Islands", "MP", "69"}, {"Puerto Rico", "PR", "72"},
	{"Virgin Islands", "VI", "78"},
}
