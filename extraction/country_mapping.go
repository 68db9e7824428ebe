package extraction

// Справочники соответствия названий стран кодам ISO3 ведутся вручную:
// написание названий в выгрузках ВОЗ не совпадает с названиями в компоненте.

// CountryNameToCode соответствие названия страны из выгрузки коду ISO3
var CountryNameToCode = map[string]string{
	"United States of America": "USA",
	"China":                    "CHN",
	"India":                    "IND",
	"Indonesia":                "IDN",
	"Pakistan":                 "PAK",
	"Bangladesh":               "BGD",
	"Nigeria":                  "NGA",
	"Brazil":                   "BRA",
	"Russian Federation":       "RUS",
	"Mexico":                   "MEX",
	"Japan":                    "JPN",
	"Philippines":              "PHL",
	"Ethiopia":                 "ETH",
	"Viet Nam":                 "VNM",
	"Egypt":                    "EGY",
	"Turkey":                   "TUR",
	"Germany":                  "DEU",
	"Islamic Republic of Iran": "IRN",
	"Thailand":                 "THA",
	"United Kingdom of Great Britain and Northern Ireland": "GBR",
	"France":                                "FRA",
	"Italy":                                 "ITA",
	"Tanzania":                              "TZA",
	"South Africa":                          "ZAF",
	"Myanmar":                               "MMR",
	"Kenya":                                 "KEN",
	"Republic of Korea":                     "KOR",
	"Colombia":                              "COL",
	"Spain":                                 "ESP",
	"Uganda":                                "UGA",
	"Argentina":                             "ARG",
	"Algeria":                               "DZA",
	"Sudan":                                 "SDN",
	"Ukraine":                               "UKR",
	"Iraq":                                  "IRQ",
	"Afghanistan":                           "AFG",
	"Poland":                                "POL",
	"Canada":                                "CAN",
	"Morocco":                               "MAR",
	"Saudi Arabia":                          "SAU",
	"Uzbekistan":                            "UZB",
	"Peru":                                  "PER",
	"Angola":                                "AGO",
	"Malaysia":                              "MYS",
	"Mozambique":                            "MOZ",
	"Ghana":                                 "GHA",
	"Yemen":                                 "YEM",
	"Nepal":                                 "NPL",
	"Venezuela":                             "VEN",
	"Madagascar":                            "MDG",
	"Cameroon":                              "CMR",
	"Niger":                                 "NER",
	"Australia":                             "AUS",
	"Democratic People's Republic of Korea": "PRK",
	"Sri Lanka":                             "LKA",
	"Burkina Faso":                          "BFA",
	"Mali":                                  "MLI",
	"Romania":                               "ROU",
	"Malawi":                                "MWI",
	"Chile":                                 "CHL",
	"Kazakhstan":                            "KAZ",
	"Zambia":                                "ZMB",
	"Guatemala":                             "GTM",
	"Ecuador":                               "ECU",
	"Syria":                                 "SYR",
	"Netherlands":                           "NLD",
	"Senegal":                               "SEN",
	"Cambodia":                              "KHM",
	"Chad":                                  "TCD",
	"Somalia":                               "SOM",
	"Zimbabwe":                              "ZWE",
	"Guinea":                                "GIN",
	"Rwanda":                                "RWA",
	"Benin":                                 "BEN",
	"Burundi":                               "BDI",
	"Tunisia":                               "TUN",
	"Bolivia":                               "BOL",
	"Belgium":                               "BEL",
	"Haiti":                                 "HTI",
	"Cuba":                                  "CUB",
	"South Sudan":                           "SSD",
	"Dominican Republic":                    "DOM",
	"Czech Republic":                        "CZE",
	"Greece":                                "GRC",
	"Jordan":                                "JOR",
	"Portugal":                              "PRT",
	"Azerbaijan":                            "AZE",
	"Sweden":                                "SWE",
	"Honduras":                              "HND",
	"United Arab Emirates":                  "ARE",
	"Hungary":                               "HUN",
	"Tajikistan":                            "TJK",
	"Belarus":                               "BLR",
	"Austria":                               "AUT",
	"Papua New Guinea":                      "PNG",
	"Serbia":                                "SRB",
	"Israel":                                "ISR",
	"Switzerland":                           "CHE",
	"Togo":                                  "TGO",
	"Sierra Leone":                          "SLE",
	"Laos":                                  "LAO",
	"Paraguay":                              "PRY",
	"Libya":                                 "LBY",
	"Bulgaria":                              "BGR",
	"Lebanon":                               "LBN",
	"Nicaragua":                             "NIC",
	"Kyrgyzstan":                            "KGZ",
	"El Salvador":                           "SLV",
	"Turkmenistan":                          "TKM",
	"Singapore":                             "SGP",
	"Denmark":                               "DNK",
	"Finland":                               "FIN",
	"Congo":                                 "COG",
	"Slovakia":                              "SVK",
	"Norway":                                "NOR",
	"Oman":                                  "OMN",
	"Palestine":                             "PSE",
	"Costa Rica":                            "CRI",
	"Liberia":                               "LBR",
	"Ireland":                               "IRL",
	"Central African Republic":              "CAF",
	"New Zealand":                           "NZL",
	"Mauritania":                            "MRT",
	"Panama":                                "PAN",
	"Kuwait":                                "KWT",
	"Croatia":                               "HRV",
	"Moldova":                               "MDA",
	"Georgia":                               "GEO",
	"Eritrea":                               "ERI",
	"Uruguay":                               "URY",
	"Bosnia and Herzegovina":                "BIH",
	"Mongolia":                              "MNG",
	"Armenia":                               "ARM",
	"Jamaica":                               "JAM",
	"Qatar":                                 "QAT",
	"Albania":                               "ALB",
	"Puerto Rico":                           "PRI",
	"Lithuania":                             "LTU",
	"Namibia":                               "NAM",
	"Gambia":                                "GMB",
	"Botswana":                              "BWA",
	"Gabon":                                 "GAB",
	"Lesotho":                               "LSO",
	"North Macedonia":                       "MKD",
	"Slovenia":                              "SVN",
	"Guinea-Bissau":                         "GNB",
	"Latvia":                                "LVA",
	"Bahrain":                               "BHR",
	"Equatorial Guinea":                     "GNQ",
	"Trinidad and Tobago":                   "TTO",
	"Estonia":                               "EST",
	"Timor-Leste":                           "TLS",
	"Mauritius":                             "MUS",
	"Cyprus":                                "CYP",
	"Eswatini":                              "SWZ",
	"Djibouti":                              "DJI",
	"Fiji":                                  "FJI",
	"Reunion":                               "REU",
	"Comoros":                               "COM",
	"Guyana":                                "GUY",
	"Bhutan":                                "BTN",
	"Solomon Islands":                       "SLB",
	"Montenegro":                            "MNE",
	"Western Sahara":                        "ESH",
	"Luxembourg":                            "LUX",
	"Suriname":                              "SUR",
	"Cabo Verde":                            "CPV",
	"Micronesia":                            "FSM",
	"Maldives":                              "MDV",
	"Malta":                                 "MLT",
	"Brunei":                                "BRN",
	"Belize":                                "BLZ",
	"Bahamas":                               "BHS",
	"Iceland":                               "ISL",
	"Vanuatu":                               "VUT",
	"Barbados":                              "BRB",
	"Sao Tome and Principe":                 "STP",
	"Samoa":                                 "WSM",
	"Saint Lucia":                           "LCA",
	"Kiribati":                              "KIR",
	"Grenada":                               "GRD",
	"Saint Vincent and the Grenadines":      "VCT",
	"Tonga":                                 "TON",
	"Seychelles":                            "SYC",
	"Antigua and Barbuda":                   "ATG",
	"Andorra":                               "AND",
	"Dominica":                              "DMA",
	"Marshall Islands":                      "MHL",
	"Saint Kitts and Nevis":                 "KNA",
	"Liechtenstein":                         "LIE",
	"Monaco":                                "MCO",
	"San Marino":                            "SMR",
	"Palau":                                 "PLW",
	"Tuvalu":                                "TUV",
	"Nauru":                                 "NRU",
	"Holy See":                              "VAT",
}

// countryNameAliases варианты написания, встречавшиеся в разных выгрузках
var countryNameAliases = map[string]string{
	"USA":                                "United States of America",
	"UK":                                 "United Kingdom of Great Britain and Northern Ireland",
	"United Kingdom":                     "United Kingdom of Great Britain and Northern Ireland",
	"United States":                      "United States of America",
	"Russia":                             "Russian Federation",
	"Iran":                               "Islamic Republic of Iran",
	"Iran (Islamic Republic of)":         "Islamic Republic of Iran",
	"Türkiye":                            "Turkey",
	"Vietnam":                            "Viet Nam",
	"United Republic of Tanzania":        "Tanzania",
	"Syrian Arab Republic":               "Syria",
	"Lao People's Democratic Republic":   "Laos",
	"Republic of Moldova":                "Moldova",
	"Bolivia (Plurinational State of)":   "Bolivia",
	"Venezuela (Bolivarian Republic of)": "Venezuela",
	"Czechia":                            "Czech Republic",
	"Brunei Darussalam":                  "Brunei",
	"Micronesia (Federated States of)":   "Micronesia",
}

// ResolveLocationCode возвращает код ISO3 для названия из выгрузки.
// Сначала применяются известные варианты написания, затем основной справочник.
func ResolveLocationCode(location string) (string, bool) {
	if canonical, ok := countryNameAliases[location]; ok {
		location = canonical
	}
	code, ok := CountryNameToCode[location]
	return code, ok
}

// BuildTargetSet строит набор целевых кодов из срезов конфигурации
func BuildTargetSet(codes []string) map[string]bool {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[code] = true
	}
	return set
}
