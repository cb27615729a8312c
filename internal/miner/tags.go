package miner

// tagRule maps any of its patterns, matched against the sanitized coinbase
// script, to a display label.
type tagRule struct {
	patterns []string
	label    string
}

// primaryTags are evaluated in order; the first rule with a matching pattern wins.
var primaryTags = []tagRule{
	{patterns: []string{"nicehash"}, label: "NiceHash"},
	{patterns: []string{"antpool"}, label: "AntPool"},
	{patterns: []string{"foundryusapool", "2cdw"}, label: "Foundry USA"},
	{patterns: []string{"f2pool"}, label: "F2Pool"},
	{patterns: []string{"viabtc"}, label: "ViaBTC"},
	{patterns: []string{"luxor"}, label: "Luxor"},
	{patterns: []string{"braiins", "slush"}, label: "Braiins Pool"},
	{patterns: []string{"btccom"}, label: "BTC.com"},
	{patterns: []string{"poolin"}, label: "Poolin"},
	{patterns: []string{"binance"}, label: "Binance Pool"},
	{patterns: []string{"secpool"}, label: "SECPOOL"},
	{patterns: []string{"marapool", "maramadeinusa"}, label: "MARA Pool"},
	{patterns: []string{"spiderpool"}, label: "SpiderPool"},
	{patterns: []string{"whitepool"}, label: "WhitePool"},
	{patterns: []string{"sbicrypto"}, label: "SBI Crypto"},
	{patterns: []string{"ultimus"}, label: "ULTIMUSPOOL"},
	{patterns: []string{"gdpool", "luckypool"}, label: "GDPool"},
	{patterns: []string{"redrock"}, label: "RedRock Pool"},
	{patterns: []string{"innopolis"}, label: "Innopolis Tech"},
	{patterns: []string{"solockpoolorg"}, label: "Solo CK"},
	{patterns: []string{"solopoolcom"}, label: "SoloPool"},
	{patterns: []string{"miningdutch"}, label: "Mining-Dutch"},
	{patterns: []string{"bitfufu"}, label: "BitFuFuPool"},
	{patterns: []string{"est3lar"}, label: "Est3lar"},
	{patterns: []string{"1thash"}, label: "1THash"},
	{patterns: []string{"maxipool"}, label: "MaxiPool"},
	{patterns: []string{"publicpool"}, label: "Public Pool"},
	{patterns: []string{"apollo", "minedbyasolofuturebitapollo"}, label: "FutureBit Apollo Solo"},
	{patterns: []string{"kano"}, label: "KanoPool"},
	{patterns: []string{"miningsquared", "bsquared"}, label: "Mining Squared"},
	{patterns: []string{"phoenix"}, label: "Phoenix"},
	{patterns: []string{"neopool"}, label: "Neopool"},
}

// compositePool is a pool that resells upstream hashrate and places the
// upstream tag after its own banner.
type compositePool struct {
	banners []string
	label   string
}

var compositePools = []compositePool{
	{banners: []string{"oceanxyz", "ocean"}, label: "OCEAN"},
}
