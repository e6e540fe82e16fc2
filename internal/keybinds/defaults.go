package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerDashboardBindings(r)
	registerTypePickerBindings(r)
	registerTextInputBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerDashboardBindings(r *Registry) {
	r.Register(ContextDashboard, "q", ActionQuit)

	// Generation controls
	r.RegisterMultiple(ContextDashboard, []string{"left", "h"}, ActionTypePrev)
	r.RegisterMultiple(ContextDashboard, []string{"right", "l", "tab"}, ActionTypeNext)
	r.Register(ContextDashboard, "/", ActionTypeSearch)
	r.RegisterMultiple(ContextDashboard, []string{"+", "="}, ActionCountInc)
	r.Register(ContextDashboard, "-", ActionCountDec)
	r.Register(ContextDashboard, "]", ActionCountIncLarge)
	r.Register(ContextDashboard, "[", ActionCountDecLarge)
	r.Register(ContextDashboard, "c", ActionCountEdit)
	r.Register(ContextDashboard, "enter", ActionGenerate)
	r.Register(ContextDashboard, "r", ActionCheckStatus)

	// Result operations
	r.Register(ContextDashboard, "f", ActionFilter)
	r.Register(ContextDashboard, "F", ActionFilterClear)
	r.Register(ContextDashboard, "y", ActionCopy)
	r.Register(ContextDashboard, "s", ActionSave)
	r.Register(ContextDashboard, "S", ActionUpload)

	// Navigation
	r.RegisterMultiple(ContextDashboard, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextDashboard, []string{"down", "j"}, ActionScrollDown)
	r.RegisterMultiple(ContextDashboard, []string{"pgup", "ctrl+u"}, ActionPageUp)
	r.RegisterMultiple(ContextDashboard, []string{"pgdown", "ctrl+d"}, ActionPageDown)
	r.RegisterMultiple(ContextDashboard, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextDashboard, []string{"G", "end"}, ActionGoToBottom)

	r.Register(ContextDashboard, "?", ActionOpenHelp)
	r.Register(ContextDashboard, "a", ActionOpenAnalytics)
}

func registerTypePickerBindings(r *Registry) {
	r.RegisterMultiple(ContextTypePicker, []string{"up", "ctrl+p"}, ActionSelectUp)
	r.RegisterMultiple(ContextTypePicker, []string{"down", "ctrl+n"}, ActionSelectDown)
	r.Register(ContextTypePicker, "enter", ActionTextSubmit)
	r.Register(ContextTypePicker, "esc", ActionTextCancel)
}

func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionScrollDown)
}
