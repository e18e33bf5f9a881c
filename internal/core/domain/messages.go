package domain

// User-facing messages (Bulgarian, as shown in the UI).
const (
	MsgFillAllFields      = "Моля, попълнете всички полета."
	MsgIdentityNotFound   = "Невалидни данни. Служител с тези имена и ID не е намерен."
	MsgLoginFailed        = "Грешка при вход. Моля, опитайте отново."
	MsgLoginFirst         = "Моля, влезте в системата първо."
	MsgFileOrComment      = "Моля, качете снимка или добавете описание на разхода."
	MsgInvalidFileType    = "Невалиден формат на файла. Позволени: JPG, JPEG, PNG, WEBP, GIF"
	MsgFileTooLarge       = "Файлът е твърде голям. Максимален размер: 10MB"
	MsgMerchantRequired   = "Моля, въведете търговец."
	MsgDateRequired       = "Моля, въведете валидна дата."
	MsgInvalidAmount      = "Моля, въведете валидна сума, по-голяма от 0."
	MsgCategoryRequired   = "Моля, изберете категория."
	MsgDescriptionNeeded  = "Моля, добавете описание на разхода."
	MsgSubmitted          = "Разходът е изпратен успешно за обработка!"
	MsgSubmitFailed       = "Грешка при изпращане на разхода. Моля, опитайте отново."
	MsgProcessingFailed   = "Грешка при обработка на разхода."
	MsgExpenseRejected    = "Разходът е отказан."
	MsgExpenseInReview    = "Разходът чака ръчно одобрение."
	MsgDemoWebhook        = "Demo режим: n8n webhook не е конфигуриран."
	MsgLoadFailed         = "Грешка при зареждане на разходите."
	MsgDecisionApproved   = "Разходът е одобрен."
	MsgDecisionRejected   = "Разходът е отказан."
	MsgDecisionFailed     = "Грешка при обработка на решението."
	MsgDecisionCancelled  = "Действието е отменено."
	MsgRejectReasonPrompt = "Моля, въведете причина за отказа."
	MsgChatEmpty          = "Моля, въведете съобщение."
	MsgChatFailed         = "Грешка при връзка с AI асистента. Моля, опитайте отново."
	MsgChatNoReply        = "Не получих отговор от асистента."
	MsgForbidden          = "Нямате достъп до тази страница."
	MsgWelcomeFormat      = "Добре дошли, %s!"
	MsgUnknownMerchant    = "Неизвестен"
	MsgNoDate             = "Няма дата"
	MsgLoggedOut          = "Не сте влезли"
	MsgTooManyRequests    = "Твърде много опити. Моля, опитайте отново след малко."
)
