package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal     Context = "global"      // Available everywhere
	ContextDashboard  Context = "dashboard"   // Main dashboard view
	ContextTypePicker Context = "type_picker" // Fuzzy data type search
	ContextTextInput  Context = "text_input"  // Count and filter inputs
	ContextHelp       Context = "help"        // Help overlay
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Generation controls
	ActionTypePrev      Action = "type_prev"      // Select previous data type
	ActionTypeNext      Action = "type_next"      // Select next data type
	ActionTypeSearch    Action = "type_search"    // Open fuzzy type search
	ActionCountInc      Action = "count_inc"      // Count +1
	ActionCountDec      Action = "count_dec"      // Count -1
	ActionCountIncLarge Action = "count_inc_10"   // Count +10
	ActionCountDecLarge Action = "count_dec_10"   // Count -10
	ActionCountEdit     Action = "count_edit"     // Type an exact count
	ActionGenerate      Action = "generate"       // Generate test data
	ActionCheckStatus   Action = "check_status"   // Re-run the connectivity probe

	// Result operations
	ActionFilter      Action = "filter"       // Edit the JMESPath filter
	ActionFilterClear Action = "filter_clear" // Drop the active filter
	ActionCopy        Action = "copy"         // Copy results to clipboard
	ActionSave        Action = "save"         // Save results to the export directory
	ActionUpload      Action = "upload"       // Upload results to S3

	// Navigation actions
	ActionScrollUp       Action = "scroll_up"         // Scroll results up
	ActionScrollDown     Action = "scroll_down"       // Scroll results down
	ActionPageUp         Action = "page_up"           // Move up one page
	ActionPageDown       Action = "page_down"         // Move down one page
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// Modal actions
	ActionOpenHelp      Action = "open_help"      // Show help overlay
	ActionOpenAnalytics Action = "open_analytics" // Show recorded call analytics
	ActionCloseModal    Action = "close_modal"    // Close current overlay
	ActionSelectUp      Action = "select_up"      // Move selection up in a list
	ActionSelectDown    Action = "select_down"    // Move selection down in a list

	// Text input actions
	ActionTextSubmit Action = "text_submit" // Submit text input
	ActionTextCancel Action = "text_cancel" // Cancel text input
)

// AllActions lists every action a user may bind
var AllActions = []Action{
	ActionQuit, ActionQuitForce,
	ActionTypePrev, ActionTypeNext, ActionTypeSearch,
	ActionCountInc, ActionCountDec, ActionCountIncLarge, ActionCountDecLarge, ActionCountEdit,
	ActionGenerate, ActionCheckStatus,
	ActionFilter, ActionFilterClear, ActionCopy, ActionSave, ActionUpload,
	ActionScrollUp, ActionScrollDown, ActionPageUp, ActionPageDown,
	ActionGoToTop, ActionGoToBottom, ActionGoToTopPrepare,
	ActionOpenHelp, ActionOpenAnalytics, ActionCloseModal, ActionSelectUp, ActionSelectDown,
	ActionTextSubmit, ActionTextCancel,
}

// IsKnown reports whether a is one of AllActions
func (a Action) IsKnown() bool {
	for _, known := range AllActions {
		if a == known {
			return true
		}
	}
	return false
}
