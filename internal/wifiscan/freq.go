package wifiscan

// channelByFreq is a closed lookup from well-known 2.4 GHz and 5 GHz center
// frequencies to channel numbers. Channel numbering is non-linear across
// bands, so this is a table rather than a formula; unlisted frequencies
// yield no channel.
var channelByFreq = map[int]int{
	// 2.4 GHz band
	2412: 1,
	2417: 2,
	2422: 3,
	2427: 4,
	2432: 5,
	2437: 6,
	2442: 7,
	2447: 8,
	2452: 9,
	2457: 10,
	2462: 11,
	2467: 12,
	2472: 13,
	2484: 14,

	// 5 GHz band
	5180: 36,
	5200: 40,
	5220: 44,
	5240: 48,
	5260: 52,
	5280: 56,
	5300: 60,
	5320: 64,
	5500: 100,
	5520: 104,
	5540: 108,
	5560: 112,
	5580: 116,
	5600: 120,
	5620: 124,
	5640: 128,
	5660: 132,
	5680: 136,
	5700: 140,
	5720: 144,
	5745: 149,
	5765: 153,
	5785: 157,
	5805: 161,
	5825: 165,
}

// freqToChannel converts a center frequency in MHz to a channel number.
// Returns 0 for frequencies outside the table.
func freqToChannel(freqMHz int) int {
	return channelByFreq[freqMHz]
}
