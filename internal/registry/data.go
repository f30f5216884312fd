package registry

import "github.com/mealpath/mealplan-engine/internal/domain"

// entries is the built-in CID catalog. Each spec is hand-curated: the
// macro figures are typical raw/as-sold per-100g values, not pulled
// from any single source, and exist to give the fingerprint gate
// (§4.5) and size-sanity gate (§4.7) something concrete to check
// external data against.
var entries = []domain.IngredientSpec{
	{
		CID: "chicken_breast", DisplayName: "chicken breast", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"meat", "poultry", "protein"},
		MustInclude:            []string{"chicken", "breast"},
		MustExclude:            []string{"nugget", "sausage", "broth", "soup"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 120, Protein: 22.5, Fat: 2.6, Carb: 0},
		TypicalPackSizesG:      []float64{400, 700, 1000, 1500},
	},
	{
		CID: "chicken_thigh", DisplayName: "chicken thigh", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"meat", "poultry", "protein"},
		MustInclude:            []string{"chicken", "thigh"},
		MustExclude:            []string{"nugget", "broth"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 177, Protein: 20, Fat: 10, Carb: 0},
		TypicalPackSizesG:      []float64{500, 900, 1200},
	},
	{
		CID: "ground_beef", DisplayName: "ground beef", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"meat", "beef", "protein"},
		MustInclude:            []string{"beef"},
		MustExclude:            []string{"broth", "jerky", "sausage"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 250, Protein: 18, Fat: 20, Carb: 0},
		TypicalPackSizesG:      []float64{454, 500, 900, 1000},
	},
	{
		CID: "salmon_fillet", DisplayName: "salmon fillet", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"seafood", "fish", "protein"},
		MustInclude:            []string{"salmon"},
		MustExclude:            []string{"smoked", "canned", "jerky"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 208, Protein: 20, Fat: 13, Carb: 0},
		TypicalPackSizesG:      []float64{150, 300, 500},
	},
	{
		CID: "shrimp", DisplayName: "shrimp", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"seafood", "fish", "protein"},
		MustInclude:            []string{"shrimp"},
		MustExclude:            []string{"chip", "cracker", "flavored_snack"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 99, Protein: 24, Fat: 0.3, Carb: 0.2},
		TypicalPackSizesG:      []float64{340, 454, 900},
	},
	{
		CID: "egg", DisplayName: "eggs", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"dairy", "eggs", "protein"},
		MustInclude:            []string{"egg"},
		MustExclude:            []string{"noodle", "roll", "candy"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 143, Protein: 12.6, Fat: 9.5, Carb: 0.7},
		TypicalPackSizesG:      []float64{600, 720}, // ~12/18 large eggs
	},
	{
		CID: "tofu_firm", DisplayName: "firm tofu", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"meat_alternative", "vegetarian", "protein"},
		MustInclude:            []string{"tofu"},
		MustExclude:            []string{"silken", "dessert"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 144, Protein: 15.5, Fat: 8.7, Carb: 3},
		TypicalPackSizesG:      []float64{349, 396},
		IsPantryItem:           true,
	},
	{
		CID: "greek_yogurt_plain", DisplayName: "plain greek yogurt", Category: domain.CategoryDairy,
		AllowedStoreCategories: []string{"dairy", "yogurt"},
		MustInclude:            []string{"greek", "yogurt"},
		MustExclude:            []string{"flavored", "dessert", "drink"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 59, Protein: 10, Fat: 0.4, Carb: 3.6},
		TypicalPackSizesG:      []float64{500, 750, 1000},
	},
	{
		CID: "cottage_cheese", DisplayName: "cottage cheese", Category: domain.CategoryDairy,
		AllowedStoreCategories: []string{"dairy", "cheese"},
		MustInclude:            []string{"cottage", "cheese"},
		MustExclude:            []string{"dessert"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 98, Protein: 11, Fat: 4.3, Carb: 3.4},
		TypicalPackSizesG:      []float64{340, 500, 750},
	},
	{
		CID: "milk_2pct", DisplayName: "2pct milk", Category: domain.CategoryDairy,
		AllowedStoreCategories: []string{"dairy", "milk"},
		MustInclude:            []string{"milk"},
		MustExclude:            []string{"chocolate", "flavored", "powder", "condensed"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 50, Protein: 3.3, Fat: 2, Carb: 4.9},
		TypicalPackSizesG:      []float64{1000, 2000},
	},
	{
		CID: "cheddar_cheese", DisplayName: "cheddar cheese", Category: domain.CategoryDairy,
		AllowedStoreCategories: []string{"dairy", "cheese"},
		MustInclude:            []string{"cheddar"},
		MustExclude:            []string{"flavored_snack", "puff"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 403, Protein: 25, Fat: 33, Carb: 1.3},
		TypicalPackSizesG:      []float64{227, 340},
	},
	{
		CID: "whey_protein", DisplayName: "whey protein powder", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"supplement", "protein_powder"},
		MustInclude:            []string{"protein", "powder"},
		MustExclude:            []string{"bar", "cookie"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 380, Protein: 80, Fat: 5, Carb: 8},
		TypicalPackSizesG:      []float64{900, 2270},
		IsPantryItem:           true,
	},
	{
		CID: "white_rice", DisplayName: "white rice", Category: domain.CategoryGrain,
		AllowedStoreCategories: []string{"grain", "rice", "pantry"},
		MustInclude:            []string{"rice"},
		MustExclude:            []string{"pudding", "cake", "cereal"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 365, Protein: 7.1, Fat: 0.7, Carb: 80},
		TypicalPackSizesG:      []float64{900, 2000, 4500},
		IsPantryItem:           true,
	},
	{
		CID: "brown_rice", DisplayName: "brown rice", Category: domain.CategoryGrain,
		AllowedStoreCategories: []string{"grain", "rice", "pantry"},
		MustInclude:            []string{"brown", "rice"},
		MustExclude:            []string{"pudding", "cereal"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 362, Protein: 7.5, Fat: 2.7, Carb: 76},
		TypicalPackSizesG:      []float64{900, 2000},
		IsPantryItem:           true,
	},
	{
		CID: "oats", DisplayName: "rolled oats", Category: domain.CategoryGrain,
		AllowedStoreCategories: []string{"cereal", "grain", "pantry"},
		MustInclude:            []string{"oats"},
		MustExclude:            []string{"cookie", "bar", "flavored"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 379, Protein: 13.2, Fat: 6.9, Carb: 67.7},
		TypicalPackSizesG:      []float64{500, 1000, 2500},
		IsPantryItem:           true,
	},
	{
		CID: "quinoa", DisplayName: "quinoa", Category: domain.CategoryGrain,
		AllowedStoreCategories: []string{"grain", "pantry"},
		MustInclude:            []string{"quinoa"},
		MustExclude:            []string{"chip", "snack"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 368, Protein: 14.1, Fat: 6.1, Carb: 64.2},
		TypicalPackSizesG:      []float64{450, 900},
		IsPantryItem:           true,
	},
	{
		CID: "whole_wheat_bread", DisplayName: "whole wheat bread", Category: domain.CategoryBakery,
		AllowedStoreCategories: []string{"bakery", "bread"},
		MustInclude:            []string{"bread"},
		MustExclude:            []string{"pudding", "cake"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 247, Protein: 13, Fat: 3.4, Carb: 41},
		TypicalPackSizesG:      []float64{500, 680},
		RequiresCategoryGate:   true,
	},
	{
		CID: "pasta_dry", DisplayName: "pasta", Category: domain.CategoryGrain,
		AllowedStoreCategories: []string{"pasta", "pantry"},
		MustInclude:            []string{"pasta"},
		MustExclude:            []string{"sauce", "soup", "salad"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 371, Protein: 13, Fat: 1.5, Carb: 74.7},
		TypicalPackSizesG:      []float64{454, 500, 900},
		IsPantryItem:           true,
		RequiresCategoryGate:   true,
	},
	{
		CID: "couscous", DisplayName: "couscous", Category: domain.CategoryGrain,
		AllowedStoreCategories: []string{"grain", "pantry"},
		MustInclude:            []string{"couscous"},
		MustExclude:            []string{"salad"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 376, Protein: 12.8, Fat: 0.6, Carb: 77.4},
		TypicalPackSizesG:      []float64{340, 454},
		IsPantryItem:           true,
	},
	{
		CID: "sweet_potato", DisplayName: "sweet potato", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"sweet", "potato"},
		MustExclude:            []string{"fries", "chip", "pie"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 86, Protein: 1.6, Fat: 0.1, Carb: 20},
		TypicalPackSizesG:      []float64{1000, 1500},
	},
	{
		CID: "white_potato", DisplayName: "potato", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"potato"},
		MustExclude:            []string{"fries", "chip", "salad"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 77, Protein: 2, Fat: 0.1, Carb: 17.5},
		TypicalPackSizesG:      []float64{2000, 4500},
	},
	{
		CID: "broccoli", DisplayName: "broccoli", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"broccoli"},
		MustExclude:            []string{"cheese_sauce", "casserole"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 34, Protein: 2.8, Fat: 0.4, Carb: 6.6},
		TypicalPackSizesG:      []float64{340, 454},
	},
	{
		CID: "spinach", DisplayName: "spinach", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"spinach"},
		MustExclude:            []string{"dip", "quiche"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 23, Protein: 2.9, Fat: 0.4, Carb: 3.6},
		TypicalPackSizesG:      []float64{142, 283},
	},
	{
		CID: "bell_pepper", DisplayName: "bell pepper", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"pepper"},
		MustExclude:            []string{"hot", "chili", "stuffed"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 31, Protein: 1, Fat: 0.3, Carb: 6},
		TypicalPackSizesG:      []float64{150, 450},
	},
	{
		CID: "zucchini", DisplayName: "zucchini", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"zucchini"},
		MustExclude:            []string{"bread", "muffin"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 17, Protein: 1.2, Fat: 0.3, Carb: 3.1},
		TypicalPackSizesG:      []float64{200, 600},
	},
	{
		CID: "carrot", DisplayName: "carrot", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"carrot"},
		MustExclude:            []string{"cake", "juice"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 41, Protein: 0.9, Fat: 0.2, Carb: 9.6},
		TypicalPackSizesG:      []float64{907, 1360},
	},
	{
		CID: "green_onion", DisplayName: "green onion", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"onion"},
		MustExclude:            []string{"powder", "ring"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 32, Protein: 1.8, Fat: 0.2, Carb: 7.3},
		TypicalPackSizesG:      []float64{90, 150},
	},
	{
		CID: "banana", DisplayName: "banana", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "fruit"},
		MustInclude:            []string{"banana"},
		MustExclude:            []string{"chip", "bread", "pudding"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 89, Protein: 1.1, Fat: 0.3, Carb: 22.8},
		TypicalPackSizesG:      []float64{120, 150},
	},
	{
		CID: "apple", DisplayName: "apple", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "fruit"},
		MustInclude:            []string{"apple"},
		MustExclude:            []string{"sauce", "juice", "pie", "chip"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 52, Protein: 0.3, Fat: 0.2, Carb: 13.8},
		TypicalPackSizesG:      []float64{150, 180},
	},
	{
		CID: "blueberries", DisplayName: "blueberries", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "fruit"},
		MustInclude:            []string{"blueberr"},
		MustExclude:            []string{"muffin", "jam", "pie"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 57, Protein: 0.7, Fat: 0.3, Carb: 14.5},
		TypicalPackSizesG:      []float64{170, 340},
	},
	{
		CID: "avocado", DisplayName: "avocado", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"produce", "fruit"},
		MustInclude:            []string{"avocado"},
		MustExclude:            []string{"oil", "guacamole"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 160, Protein: 2, Fat: 14.7, Carb: 8.5},
		TypicalPackSizesG:      []float64{150, 200},
	},
	{
		CID: "olive_oil", DisplayName: "olive oil", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"oil", "pantry"},
		MustInclude:            []string{"olive", "oil"},
		MustExclude:            []string{"spray"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 884, Protein: 0, Fat: 100, Carb: 0},
		TypicalPackSizesG:      []float64{500, 750, 1000},
		IsPantryItem:           true,
		RequiresCategoryGate:   true,
	},
	{
		CID: "peanut_butter", DisplayName: "peanut butter", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"spread", "pantry"},
		MustInclude:            []string{"peanut", "butter"},
		MustExclude:            []string{"cup", "cookie"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 588, Protein: 25, Fat: 50, Carb: 20},
		TypicalPackSizesG:      []float64{454, 510, 1000},
		IsPantryItem:           true,
	},
	{
		CID: "almonds", DisplayName: "almonds", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"nuts", "snack", "pantry"},
		MustInclude:            []string{"almond"},
		MustExclude:            []string{"milk", "butter", "flour"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 579, Protein: 21.2, Fat: 49.9, Carb: 21.6},
		TypicalPackSizesG:      []float64{200, 454},
		IsPantryItem:           true,
	},
	{
		CID: "walnuts", DisplayName: "walnuts", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"nuts", "snack", "pantry"},
		MustInclude:            []string{"walnut"},
		MustExclude:            []string{"oil", "bread"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 654, Protein: 15.2, Fat: 65.2, Carb: 13.7},
		TypicalPackSizesG:      []float64{200, 454},
		IsPantryItem:           true,
	},
	{
		CID: "chia_seeds", DisplayName: "chia seeds", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"seeds", "pantry"},
		MustInclude:            []string{"chia"},
		MustExclude:            []string{"pudding_snack", "drink"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 486, Protein: 16.5, Fat: 30.7, Carb: 42.1},
		TypicalPackSizesG:      []float64{200, 454},
		IsPantryItem:           true,
	},
	{
		CID: "black_beans", DisplayName: "black beans", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"canned", "beans", "pantry"},
		MustInclude:            []string{"black", "bean"},
		MustExclude:            []string{"soup", "chip"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 132, Protein: 8.9, Fat: 0.5, Carb: 23.7},
		TypicalPackSizesG:      []float64{398, 540},
		IsPantryItem:           true,
	},
	{
		CID: "chickpea", DisplayName: "chickpeas", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"canned", "beans", "pantry"},
		MustInclude:            []string{"chickpea"},
		MustExclude:            []string{"hummus", "chip"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 164, Protein: 8.9, Fat: 2.6, Carb: 27.4},
		TypicalPackSizesG:      []float64{398, 540},
		IsPantryItem:           true,
	},
	{
		CID: "lentils", DisplayName: "lentils", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"beans", "pantry", "grain"},
		MustInclude:            []string{"lentil"},
		MustExclude:            []string{"soup", "chip"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 116, Protein: 9, Fat: 0.4, Carb: 20.1},
		TypicalPackSizesG:      []float64{454, 900},
		IsPantryItem:           true,
	},
	{
		CID: "hummus", DisplayName: "hummus", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"dip", "deli"},
		MustInclude:            []string{"hummus"},
		MustExclude:            []string{"chip"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 166, Protein: 7.9, Fat: 9.6, Carb: 14.3},
		TypicalPackSizesG:      []float64{284, 454},
	},
	{
		CID: "tomato_sauce", DisplayName: "tomato sauce", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"sauce", "pantry"},
		MustInclude:            []string{"tomato"},
		MustExclude:            []string{"ketchup_brand", "paste"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 29, Protein: 1.4, Fat: 0.2, Carb: 6.6},
		TypicalPackSizesG:      []float64{398, 680},
		IsPantryItem:           true,
	},
	{
		CID: "soy_sauce", DisplayName: "soy sauce", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"condiment", "pantry"},
		MustInclude:            []string{"soy", "sauce"},
		MustExclude:            []string{"milk"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 53, Protein: 8, Fat: 0.1, Carb: 4.9},
		TypicalPackSizesG:      []float64{296, 591},
		IsPantryItem:           true,
		RequiresCategoryGate:   true,
	},
	{
		CID: "cooking_spray", DisplayName: "cooking spray", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"oil", "pantry"},
		MustInclude:            []string{"spray"},
		MustExclude:            []string{"cleaning", "hair"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 884, Protein: 0, Fat: 100, Carb: 0},
		TypicalPackSizesG:      []float64{141, 170},
		IsPantryItem:           true,
		RequiresCategoryGate:   true,
	},
	{
		CID: "oat_milk", DisplayName: "oat milk", Category: domain.CategoryDairy,
		AllowedStoreCategories: []string{"dairy_alternative", "milk"},
		MustInclude:            []string{"oat", "milk"},
		MustExclude:            []string{"creamer"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 47, Protein: 1, Fat: 1.5, Carb: 7.5},
		TypicalPackSizesG:      []float64{1000, 1890},
	},
	{
		CID: "almond_milk", DisplayName: "almond milk", Category: domain.CategoryDairy,
		AllowedStoreCategories: []string{"dairy_alternative", "milk"},
		MustInclude:            []string{"almond", "milk"},
		MustExclude:            []string{"creamer"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 17, Protein: 0.6, Fat: 1.1, Carb: 0.6},
		TypicalPackSizesG:      []float64{1000, 1890},
	},
	{
		CID: "tortilla", DisplayName: "tortilla", Category: domain.CategoryBakery,
		AllowedStoreCategories: []string{"bakery", "bread"},
		MustInclude:            []string{"tortilla"},
		MustExclude:            []string{"chip"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 312, Protein: 8.2, Fat: 7.2, Carb: 52},
		TypicalPackSizesG:      []float64{400, 600},
	},
	{
		CID: "soft_drink", DisplayName: "soft drink", Category: domain.CategoryBeverage,
		AllowedStoreCategories: []string{"beverage", "soda"},
		MustInclude:            []string{"soda", "cola", "soft_drink"},
		MustExclude:            []string{"diet"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 42, Protein: 0, Fat: 0, Carb: 10.6},
		TypicalPackSizesG:      []float64{355, 500, 2000},
	},
	{
		CID: "mayonnaise", DisplayName: "mayonnaise", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"condiment", "pantry"},
		MustInclude:            []string{"mayo"},
		MustExclude:            []string{"salad_premade"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 680, Protein: 1, Fat: 75, Carb: 0.6},
		TypicalPackSizesG:      []float64{355, 890},
		IsPantryItem:           true,
	},
	{
		CID: "protein_bar", DisplayName: "protein bar", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"snack", "protein"},
		MustInclude:            []string{"protein", "bar"},
		MustExclude:            []string{"granola_bar"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 374, Protein: 30, Fat: 13, Carb: 36},
		TypicalPackSizesG:      []float64{60, 65},
	},
	{
		CID: "asparagus", DisplayName: "asparagus", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"asparagus"},
		MustExclude:            []string{"soup"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 20, Protein: 2.2, Fat: 0.1, Carb: 3.9},
		TypicalPackSizesG:      []float64{250, 454},
	},
	{
		CID: "mushroom", DisplayName: "mushroom", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"mushroom"},
		MustExclude:            []string{"soup", "gravy"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 22, Protein: 3.1, Fat: 0.3, Carb: 3.3},
		TypicalPackSizesG:      []float64{227, 454},
	},
	{
		CID: "cucumber", DisplayName: "cucumber", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"cucumber"},
		MustExclude:            []string{"pickle"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 15, Protein: 0.7, Fat: 0.1, Carb: 3.6},
		TypicalPackSizesG:      []float64{300, 450},
	},
	{
		CID: "turkey_breast", DisplayName: "turkey breast", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"meat", "poultry", "deli"},
		MustInclude:            []string{"turkey"},
		MustExclude:            []string{"sausage", "bacon"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 135, Protein: 24, Fat: 3.6, Carb: 0},
		TypicalPackSizesG:      []float64{340, 680},
	},
	{
		CID: "pork_loin", DisplayName: "pork loin", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"meat", "pork"},
		MustInclude:            []string{"pork"},
		MustExclude:            []string{"bacon", "sausage"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 143, Protein: 22, Fat: 5.7, Carb: 0},
		TypicalPackSizesG:      []float64{500, 900},
	},
	{
		CID: "tilapia", DisplayName: "tilapia", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"seafood", "fish"},
		MustInclude:            []string{"tilapia"},
		MustExclude:            []string{"fried"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 96, Protein: 20.1, Fat: 1.7, Carb: 0},
		TypicalPackSizesG:      []float64{454, 900},
	},
	{
		CID: "tuna_canned", DisplayName: "canned tuna", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"canned", "seafood"},
		MustInclude:            []string{"tuna"},
		MustExclude:            []string{"salad_premade", "casserole"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 116, Protein: 25.5, Fat: 1, Carb: 0},
		TypicalPackSizesG:      []float64{142, 160},
		IsPantryItem:           true,
	},
	{
		CID: "edamame", DisplayName: "edamame", Category: domain.CategoryProtein,
		AllowedStoreCategories: []string{"frozen", "vegetable"},
		MustInclude:            []string{"edamame"},
		MustExclude:            []string{"snack"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 121, Protein: 11.9, Fat: 5.2, Carb: 8.9},
		TypicalPackSizesG:      []float64{340, 454},
	},
	{
		CID: "feta_cheese", DisplayName: "feta cheese", Category: domain.CategoryDairy,
		AllowedStoreCategories: []string{"dairy", "cheese"},
		MustInclude:            []string{"feta"},
		MustExclude:            []string{"spread"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 264, Protein: 14.2, Fat: 21.3, Carb: 4.1},
		TypicalPackSizesG:      []float64{200, 400},
	},
	{
		CID: "mozzarella", DisplayName: "mozzarella", Category: domain.CategoryDairy,
		AllowedStoreCategories: []string{"dairy", "cheese"},
		MustInclude:            []string{"mozzarella"},
		MustExclude:            []string{"stick_snack"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 280, Protein: 28, Fat: 17, Carb: 3.1},
		TypicalPackSizesG:      []float64{227, 454},
	},
	{
		CID: "butter", DisplayName: "butter", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"dairy", "fat"},
		MustInclude:            []string{"butter"},
		MustExclude:            []string{"peanut", "almond"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 717, Protein: 0.9, Fat: 81, Carb: 0.1},
		TypicalPackSizesG:      []float64{227, 454},
		IsPantryItem:           true,
	},
	{
		CID: "honey", DisplayName: "honey", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"sweetener", "pantry"},
		MustInclude:            []string{"honey"},
		MustExclude:            []string{"candy"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 304, Protein: 0.3, Fat: 0, Carb: 82.4},
		TypicalPackSizesG:      []float64{340, 500},
		IsPantryItem:           true,
	},
	{
		CID: "flour_ww", DisplayName: "whole wheat flour", Category: domain.CategoryPantry,
		AllowedStoreCategories: []string{"baking", "pantry"},
		MustInclude:            []string{"flour"},
		MustExclude:            []string{"bread", "cake"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 340, Protein: 13.2, Fat: 2.5, Carb: 72},
		TypicalPackSizesG:      []float64{1000, 2270},
		IsPantryItem:           true,
	},
	{
		CID: "granola", DisplayName: "granola", Category: domain.CategoryGrain,
		AllowedStoreCategories: []string{"cereal", "pantry"},
		MustInclude:            []string{"granola"},
		MustExclude:            []string{"bar"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 471, Protein: 10, Fat: 20, Carb: 64},
		TypicalPackSizesG:      []float64{340, 500},
		IsPantryItem:           true,
	},
	{
		CID: "strawberries", DisplayName: "strawberries", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "fruit"},
		MustInclude:            []string{"strawberr"},
		MustExclude:            []string{"jam", "syrup"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 32, Protein: 0.7, Fat: 0.3, Carb: 7.7},
		TypicalPackSizesG:      []float64{227, 454},
	},
	{
		CID: "orange", DisplayName: "orange", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "fruit"},
		MustInclude:            []string{"orange"},
		MustExclude:            []string{"juice", "soda"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 47, Protein: 0.9, Fat: 0.1, Carb: 11.8},
		TypicalPackSizesG:      []float64{130, 150},
	},
	{
		CID: "cashews", DisplayName: "cashews", Category: domain.CategoryFat,
		AllowedStoreCategories: []string{"nuts", "snack", "pantry"},
		MustInclude:            []string{"cashew"},
		MustExclude:            []string{"butter", "milk"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 553, Protein: 18.2, Fat: 43.9, Carb: 30.2},
		TypicalPackSizesG:      []float64{200, 454},
		IsPantryItem:           true,
	},
	{
		CID: "bagel", DisplayName: "bagel", Category: domain.CategoryBakery,
		AllowedStoreCategories: []string{"bakery", "bread"},
		MustInclude:            []string{"bagel"},
		MustExclude:            []string{"chip", "bite"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 257, Protein: 10, Fat: 1.5, Carb: 50.5},
		TypicalPackSizesG:      []float64{300, 400},
	},
	{
		CID: "rice_cake", DisplayName: "rice cake", Category: domain.CategoryGrain,
		AllowedStoreCategories: []string{"snack", "grain"},
		MustInclude:            []string{"rice", "cake"},
		MustExclude:            []string{"birthday"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 387, Protein: 8.2, Fat: 3, Carb: 81.2},
		TypicalPackSizesG:      []float64{100, 130},
	},
	{
		CID: "kale", DisplayName: "kale", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"kale"},
		MustExclude:            []string{"chip_snack"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 49, Protein: 4.3, Fat: 0.9, Carb: 8.8},
		TypicalPackSizesG:      []float64{142, 284},
	},
	{
		CID: "beet", DisplayName: "beet", Category: domain.CategoryProduce,
		AllowedStoreCategories: []string{"produce", "vegetable"},
		MustInclude:            []string{"beet"},
		MustExclude:            []string{"pickled_candy"},
		ExpectedMacrosPer100g:  domain.Macros{Kcal: 43, Protein: 1.6, Fat: 0.2, Carb: 9.6},
		TypicalPackSizesG:      []float64{500, 900},
	},
}
