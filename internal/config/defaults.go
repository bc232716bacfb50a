package config

// DefaultSelectableSKUs returns the built-in multiple-quantity allow-list:
// listings where one order unit is a bundle whose size the buyer picks.
func DefaultSelectableSKUs() []string {
	return []string{
		"B08DTXNL8X-500-4549337280724",
		"b00vgpkw10-3",
		"A1331-070716-j0724-S10",
		"maker-B0CB1BGSK9-952",
		"st000433-B0CKTZRQ5L-SET1",
		"20240927－20156",
		"A0001-070403-J6666-S1",
		"20240927-3234",
		"st000433-B0CKTZRQ5L-SET3",
		"2024-0927-43125",
		"2024-0927-53905",
		"maker-B0C1JXDG1F-1561",
		"A1446-070912-J1886-S6",
		"A1569-071015-j9412-S4",
		"A1551-071008-j9382-S4",
	}
}

// DefaultJANDisplayOverrides returns the built-in JAN → display value table
// for products whose JAN is a placeholder or not printed on the shelf label.
func DefaultJANDisplayOverrides() map[string]string {
	return map[string]string{
		"000000000A003": "なし",
		"4580063253194": "X000VPDQIR",
		"000000000A020": "X000L5CX4F",
		"2100000023295": "なし",
		"000000000A018": "X0016MJ2RN",
		"000000000A021": "X000IYJ5LN",
		"000000000A022": "o6uv",
	}
}
