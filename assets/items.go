package assets

// Item names. The inventory always carries a count for each of these.
const (
	ItemEnergyPotion = "Energy Potion"
	ItemManaCrystal  = "Mana Crystal"
	ItemGlyphShard   = "Glyph Shard"
)

// Items is the drop table, in roll order.
var Items = []string{ItemEnergyPotion, ItemManaCrystal, ItemGlyphShard}

// DefaultInventory returns a zeroed count for every known item.
func DefaultInventory() map[string]int {
	inv := make(map[string]int, len(Items))
	for _, it := range Items {
		inv[it] = 0
	}
	return inv
}
