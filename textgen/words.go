package textgen

var defaultWords = []string{
	// colors
	"red", "orange", "yellow", "green", "blue", "indigo", "violet", "black",
	"white", "silver", "golden", "crimson", "teal", "amber", "ivory", "pink",
	// fruits
	"apple", "banana", "cherry", "grape", "lemon", "lime", "mango", "melon",
	"peach", "pear", "plum", "kiwi", "papaya", "apricot", "fig", "guava",
	// materials
	"cotton", "leather", "steel", "wooden", "ceramic", "glass", "bamboo",
	"copper", "linen", "wool", "marble", "rubber",
	// nouns
	"lamp", "chair", "table", "kettle", "mug", "blanket", "jacket", "boot",
	"scarf", "basket", "clock", "mirror", "pillow", "bottle", "backpack",
	"notebook", "pencil", "speaker", "charger", "helmet", "bicycle", "tent",
	// adjectives
	"vintage", "compact", "deluxe", "portable", "classic", "modern", "rustic",
	"organic", "premium", "handmade", "lightweight", "durable", "cozy",
	"sturdy", "elegant", "waterproof", "foldable", "wireless",
}
