package menu

// BagelTypes are the bagel varieties sold from the case
var BagelTypes = []string{
	"plain", "everything", "sesame", "poppy", "onion", "cinnamon raisin",
	"blueberry", "whole wheat", "gluten free", "rainbow",
}

// DrinkSizes and DrinkTemperatures are the option sets for sized beverages
var (
	DrinkSizes        = []string{"small", "medium", "large"}
	DrinkTemperatures = []string{"hot", "iced"}
)

// DefaultSnapshot builds the demo store's menu. Real deployments load a
// snapshot from the menu service; this one keeps the engine and its tests
// self-contained.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		ItemsByType: map[string][]Item{
			"bagel": {
				{Name: "Bagel", Type: "bagel", Price: 1.75, Description: "any variety from the case"},
			},
			"coffee": {
				{Name: "Coffee", Type: "coffee", Price: 2.25, Description: "fresh drip, hot or iced"},
				{Name: "Latte", Type: "coffee", Price: 4.25},
				{Name: "Cappuccino", Type: "coffee", Price: 4.00},
				{Name: "Espresso", Type: "coffee", Price: 2.75},
				{Name: "Cold Brew", Type: "coffee", Price: 4.50},
			},
			"tea": {
				{Name: "Tea", Type: "tea", Price: 2.00},
				{Name: "Chai Latte", Type: "tea", Price: 4.25},
			},
			"juice": {
				{Name: "Orange Juice Small", Type: "juice", Price: 3.00},
				{Name: "Orange Juice Large", Type: "juice", Price: 4.50},
				{Name: "Fresh Squeezed Orange Juice", Type: "juice", Price: 5.50},
				{Name: "Apple Juice", Type: "juice", Price: 3.00},
			},
			"speed": {
				{Name: "Bacon Egg and Cheese", Type: "speed", Price: 6.50,
					DefaultIngredients: []string{"bacon", "egg", "american cheese"}},
				{Name: "Sausage Egg and Cheese", Type: "speed", Price: 6.50,
					DefaultIngredients: []string{"sausage", "egg", "american cheese"}},
				{Name: "Lox Special", Type: "speed", Price: 11.00,
					DefaultIngredients: []string{"lox", "cream cheese", "capers", "red onion", "tomato"}},
			},
			"omelette": {
				{Name: "Western Omelette", Type: "omelette", Price: 9.50,
					DefaultIngredients: []string{"ham", "peppers", "onions", "cheddar"}},
				{Name: "Veggie Omelette", Type: "omelette", Price: 8.75,
					DefaultIngredients: []string{"spinach", "mushrooms", "tomato", "swiss"}},
			},
			"sandwich": {
				{Name: "Turkey Club", Type: "sandwich", Price: 9.75,
					DefaultIngredients: []string{"turkey", "bacon", "lettuce", "tomato", "mayo"}},
				{Name: "Tuna Melt", Type: "sandwich", Price: 8.95,
					DefaultIngredients: []string{"tuna salad", "american cheese", "tomato"}},
			},
		},
		AttributeSchemas: map[string][]AttributeDef{
			"omelette": {
				{Name: "side_choice", Question: "Would you like a bagel, fruit salad, or home fries on the side?",
					Options: []string{"bagel", "fruit salad", "home fries"}, Required: true},
				{Name: "bagel_choice", Question: "What kind of bagel would you like with that?",
					Options: BagelTypes},
			},
			"sandwich": {
				{Name: "side_choice", Question: "Would you like chips, fruit salad, or a pickle with that?",
					Options: []string{"chips", "fruit salad", "pickle", "bagel"}, Required: true},
				{Name: "bagel_choice", Question: "What kind of bagel for the sandwich?",
					Options: BagelTypes},
			},
		},
	}
}
