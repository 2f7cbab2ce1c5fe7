// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package player

import (
	"fmt"

	"github.com/arcadia-gg/arcadia/pkg/uuidgen"
)

// buildDisplayName draws a "{Color} {Adjective} {Noun}" name from the word
// pools below.
//
// # Draw Order
//
// Exactly four bytes are consumed from src, in order: color index, adjective
// index, creature-vs-plant coin flip, noun index. Indexes reduce modulo the
// pool length, so every byte value maps to a valid word.
func buildDisplayName(src uuidgen.ByteSource) string {
	color := colors[int(src.Byte())%len(colors)]
	adjective := adjectives[int(src.Byte())%len(adjectives)]

	var noun string
	if src.Byte()&1 == 1 {
		noun = creatures[int(src.Byte())%len(creatures)]
	} else {
		noun = plants[int(src.Byte())%len(plants)]
	}

	return fmt.Sprintf("%s %s %s", color, adjective, noun)
}

var colors = []string{
	"Red", "Blue", "Green", "Yellow", "Orange", "Purple", "Pink", "Brown",
	"Black", "White", "Gray", "Teal", "Cyan", "Magenta", "Maroon", "Navy",
	"Olive", "Lime", "Coral", "Turquoise", "Gold", "Silver", "Bronze", "Ivory",
	"Beige", "Lavender", "Mint", "Peach", "Amber", "Crimson", "Azure", "Emerald",
	"Violet", "Indigo", "Ruby", "Sapphire", "Onyx", "Pearl", "Jade", "Topaz",
	"Garnet", "Obsidian", "Copper", "Steel", "Platinum", "Charcoal", "Sand", "Rose",
}

var adjectives = []string{
	"Swift", "Brave", "Mighty", "Silent", "Golden", "Ancient", "Fierce", "Noble",
	"Mystic", "Crystal", "Shadow", "Bright", "Wild", "Gentle", "Storm", "Fire",
	"Frost", "Thunder", "Lightning", "Celestial", "Radiant", "Crimson", "Azure",
	"Emerald", "Silver", "Cosmic", "Eternal", "Primal", "Savage", "Serene",
	"Blazing", "Frozen", "Winged", "Iron", "Steel", "Diamond", "Ruby", "Sapphire",
}

var creatures = []string{
	"Wolf", "Eagle", "Tiger", "Dragon", "Phoenix", "Bear", "Hawk", "Lion",
	"Panther", "Falcon", "Raven", "Stag", "Fox", "Lynx", "Owl", "Shark",
	"Viper", "Cobra", "Stallion", "Leopard", "Jaguar", "Condor", "Bison", "Rhino",
	"Elk", "Moose", "Badger", "Wolverine", "Cougar", "Cheetah", "Orca", "Dolphin",
	"Whale", "Kraken", "Turtle", "Tortoise", "Gecko", "Iguana", "Salamander",
	"Newt", "Toad", "Frog", "Heron", "Crane", "Pelican", "Albatross", "Petrel",
	"Penguin", "Seal", "Walrus",
}

var plants = []string{
	"Oak", "Pine", "Redwood", "Cedar", "Birch", "Maple", "Willow", "Ash",
	"Elder", "Yew", "Cypress", "Sequoia", "Magnolia", "Cherry", "Bamboo", "Lotus",
	"Rose", "Orchid", "Lily", "Iris", "Tulip", "Sunflower", "Lavender", "Jasmine",
	"Sage", "Thyme", "Basil", "Mint", "Rosemary", "Fern", "Moss", "Ivy",
	"Vine", "Heather", "Thistle", "Clover", "Daisy",
}
