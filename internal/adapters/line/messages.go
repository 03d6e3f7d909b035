package line

// Canned template messages for the webhook command flows.

// NewNotLinkedMessage prompts the user to start the account link flow.
func NewNotLinkedMessage(liffURL string) TemplateMessage {
	return TemplateMessage{
		Type:    "template",
		AltText: "アカウント連携されていません",
		Template: ButtonsTemplate{
			Type: "buttons",
			Text: "アカウントが連携されていません。「アカウント連携する」を押して連携してください。",
			Actions: []TemplateAction{
				{Type: "uri", Label: "アカウント連携する", URI: liffURL},
			},
		},
	}
}

// NewAccountSettingsMessage offers link or unlink depending on the user's
// current link state.
func NewAccountSettingsMessage(linked bool, liffURL string) TemplateMessage {
	action := TemplateAction{Type: "uri", Label: "アカウント連携開始", URI: liffURL}
	if linked {
		action = TemplateAction{Type: "message", Label: "アカウント連携解除", Text: "アカウント連携解除"}
	}

	return TemplateMessage{
		Type:    "template",
		AltText: "Account Link",
		Template: ButtonsTemplate{
			Type:    "buttons",
			Text:    "設定メニュー",
			Actions: []TemplateAction{action},
		},
	}
}

// NewMenuMessage is the top-level command menu.
func NewMenuMessage() TemplateMessage {
	return TemplateMessage{
		Type:    "template",
		AltText: "メニュー",
		Template: ButtonsTemplate{
			Type: "buttons",
			Text: "メニュー",
			Actions: []TemplateAction{
				{Type: "message", Label: "デイリーレポート取得", Text: "デイリーレポート"},
			},
		},
	}
}

// NewUnlinkedMessage confirms account unlink.
func NewUnlinkedMessage() TextMessage {
	return NewTextMessage("アカウント連携を解除しました")
}
