package provider

import "golang-news-globe/internal/news/config"

// DefaultRegionGroups covers the Indian states and union territories shown on the regional overlay.
var DefaultRegionGroups = []config.RegionGroup{
	{Query: "Telangana Hyderabad news", Regions: []string{"Telangana"}},
	{Query: "Andhra Pradesh Visakhapatnam Vijayawada news", Regions: []string{"Andhra Pradesh"}},
	{Query: "Tamil Nadu Chennai Coimbatore news", Regions: []string{"Tamil Nadu"}},
	{Query: "Karnataka Bengaluru Mysuru news", Regions: []string{"Karnataka"}},
	{Query: "Kerala Kochi Thiruvananthapuram news", Regions: []string{"Kerala"}},
	{Query: "Maharashtra Mumbai Pune Nagpur news", Regions: []string{"Maharashtra"}},
	{Query: "Gujarat Ahmedabad Surat news", Regions: []string{"Gujarat"}},
	{Query: "Rajasthan Jaipur Udaipur news", Regions: []string{"Rajasthan"}},
	{Query: "Uttar Pradesh Lucknow Varanasi Noida news", Regions: []string{"Uttar Pradesh"}},
	{Query: "Madhya Pradesh Bhopal Indore news", Regions: []string{"Madhya Pradesh"}},
	{Query: "Delhi NCR news", Regions: []string{"Delhi"}},
	{Query: "West Bengal Kolkata news", Regions: []string{"West Bengal"}},
	{Query: "Bihar Patna news", Regions: []string{"Bihar"}},
	{Query: "Punjab Chandigarh Ludhiana news", Regions: []string{"Punjab"}},
	{Query: "Haryana Gurugram Faridabad news", Regions: []string{"Haryana"}},
	{Query: "Odisha Bhubaneswar news", Regions: []string{"Odisha"}},
	{Query: "Assam Guwahati news", Regions: []string{"Assam"}},
	{Query: "Jharkhand Ranchi news", Regions: []string{"Jharkhand"}},
	{Query: "Chhattisgarh Raipur news", Regions: []string{"Chhattisgarh"}},
	{Query: "Uttarakhand Dehradun news", Regions: []string{"Uttarakhand"}},
	{Query: "Himachal Pradesh Shimla news", Regions: []string{"Himachal Pradesh"}},
	{Query: "Goa Panaji news", Regions: []string{"Goa"}},
	{Query: "Jammu Kashmir Srinagar news", Regions: []string{"Jammu & Kashmir"}},
	{Query: "Ladakh Leh news", Regions: []string{"Ladakh"}},
	{Query: "Manipur Imphal news", Regions: []string{"Manipur"}},
	{Query: "Meghalaya Shillong news", Regions: []string{"Meghalaya"}},
	{Query: "Tripura Agartala news", Regions: []string{"Tripura"}},
	{Query: "Nagaland Kohima news", Regions: []string{"Nagaland"}},
	{Query: "Mizoram Aizawl news", Regions: []string{"Mizoram"}},
	{Query: "Arunachal Pradesh Itanagar news", Regions: []string{"Arunachal Pradesh"}},
	{Query: "Sikkim Gangtok news", Regions: []string{"Sikkim"}},
}

// DefaultRegionKeywords maps a lower-cased region name to the place names that identify it.
var DefaultRegionKeywords = map[string][]string{
	"telangana":         {"telangana", "hyderabad", "secunderabad", "warangal", "nizamabad", "karimnagar"},
	"andhra pradesh":    {"andhra pradesh", "visakhapatnam", "vijayawada", "tirupati", "guntur", "amaravati"},
	"tamil nadu":        {"tamil nadu", "chennai", "coimbatore", "madurai", "salem", "tiruchirappalli"},
	"karnataka":         {"karnataka", "bengaluru", "bangalore", "mysuru", "mysore", "hubli", "mangalore"},
	"kerala":            {"kerala", "kochi", "thiruvananthapuram", "kozhikode", "thrissur", "kollam"},
	"maharashtra":       {"maharashtra", "mumbai", "pune", "nagpur", "thane", "nashik", "aurangabad"},
	"gujarat":           {"gujarat", "ahmedabad", "surat", "vadodara", "rajkot", "gandhinagar"},
	"rajasthan":         {"rajasthan", "jaipur", "jodhpur", "udaipur", "kota", "ajmer"},
	"uttar pradesh":     {"uttar pradesh", "lucknow", "varanasi", "noida", "agra", "kanpur", "prayagraj"},
	"madhya pradesh":    {"madhya pradesh", "bhopal", "indore", "jabalpur", "gwalior"},
	"delhi":             {"delhi", "new delhi", "ncr"},
	"west bengal":       {"west bengal", "kolkata", "calcutta", "howrah", "durgapur"},
	"bihar":             {"bihar", "patna", "gaya", "muzaffarpur", "bhagalpur"},
	"punjab":            {"punjab", "chandigarh", "ludhiana", "amritsar", "jalandhar"},
	"haryana":           {"haryana", "gurugram", "gurgaon", "faridabad", "karnal", "hisar"},
	"odisha":            {"odisha", "orissa", "bhubaneswar", "cuttack", "puri"},
	"assam":             {"assam", "guwahati", "dibrugarh", "silchar"},
	"jharkhand":         {"jharkhand", "ranchi", "jamshedpur", "dhanbad", "bokaro"},
	"chhattisgarh":      {"chhattisgarh", "raipur", "bilaspur", "durg"},
	"uttarakhand":       {"uttarakhand", "dehradun", "haridwar", "rishikesh", "nainital"},
	"himachal pradesh":  {"himachal", "shimla", "manali", "dharamshala", "kullu"},
	"goa":               {"goa", "panaji", "margao", "vasco"},
	"jammu & kashmir":   {"jammu", "kashmir", "srinagar", "anantnag", "baramulla"},
	"ladakh":            {"ladakh", "leh", "kargil"},
	"manipur":           {"manipur", "imphal"},
	"meghalaya":         {"meghalaya", "shillong", "tura"},
	"tripura":           {"tripura", "agartala"},
	"nagaland":          {"nagaland", "kohima", "dimapur"},
	"mizoram":           {"mizoram", "aizawl", "lunglei"},
	"arunachal pradesh": {"arunachal", "itanagar", "tawang"},
	"sikkim":            {"sikkim", "gangtok"},
}
