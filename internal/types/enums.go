package types

// Member Status values
const (
	MemberActive   = "active"
	MemberInactive = "inactive"
)

// Notification categories. The same tags are used for in-app
// notification rows and for the dispatcher's request type.
const (
	CategoryEvent   = "event"
	CategoryMeeting = "meeting"
	CategoryExpense = "expense"
	CategoryGallery = "gallery"
)

// Expense categories
const (
	ExpenseEvents         = "Events"
	ExpenseEquipment      = "Equipment"
	ExpenseMarketing      = "Marketing"
	ExpenseVenue          = "Venue"
	ExpenseFoodBeverages  = "Food & Beverages"
	ExpenseTransportation = "Transportation"
	ExpenseSupplies       = "Supplies"
	ExpenseOther          = "Other"
)

var ValidCategories = []string{
	CategoryEvent, CategoryMeeting, CategoryExpense, CategoryGallery,
}

var ValidExpenseCategories = []string{
	ExpenseEvents, ExpenseEquipment, ExpenseMarketing, ExpenseVenue,
	ExpenseFoodBeverages, ExpenseTransportation, ExpenseSupplies, ExpenseOther,
}

// Helper functions for validation
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

func IsValidExpenseCategory(category string) bool {
	for _, c := range ValidExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}
