package i18n

// DefaultMessages returns built-in translations for all supported locales.
// These can be overridden by loading JSON files from a directory.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocaleUz: uzMessages,
		LocaleRu: ruMessages,
		LocaleEn: enMessages,
	}
}

var uzMessages = map[string]string{
	"relay.delivery_refused": "Xabar yetkazilmadi: qabul qiluvchi sizdan xabar olishni xohlamaydi",
	"relay.sender_banned":    "Siz bloklangansiz va xabar yubora olmaysiz",
	"relay.block_confirmed":  "Foydalanuvchi bloklandi. U endi sizga yoza olmaydi",
	"relay.report_confirmed": "Shikoyat qabul qilindi. Administratorlar tekshirib chiqadi",
	"relay.nothing_to_report": "Shikoyat qilinadigan xabar topilmadi",
	"relay.language_saved":   "Til saqlandi: %s",
	"relay.new_message":      "Sizga anonim xabar keldi",
}

var ruMessages = map[string]string{
	"relay.delivery_refused": "Сообщение не доставлено: получатель не принимает от вас сообщения",
	"relay.sender_banned":    "Вы заблокированы и не можете отправлять сообщения",
	"relay.block_confirmed":  "Пользователь заблокирован. Он больше не сможет вам писать",
	"relay.report_confirmed": "Жалоба принята. Администраторы её рассмотрят",
	"relay.nothing_to_report": "Сообщение для жалобы не найдено",
	"relay.language_saved":   "Язык сохранён: %s",
	"relay.new_message":      "Вам пришло анонимное сообщение",
}

var enMessages = map[string]string{
	"relay.delivery_refused": "Message not delivered: the recipient does not accept messages from you",
	"relay.sender_banned":    "You are banned and cannot send messages",
	"relay.block_confirmed":  "User blocked. They can no longer message you",
	"relay.report_confirmed": "Report received. Moderators will review it",
	"relay.nothing_to_report": "No message found to report",
	"relay.language_saved":   "Language saved: %s",
	"relay.new_message":      "You have a new anonymous message",
}
