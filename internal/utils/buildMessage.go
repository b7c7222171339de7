package utils

// BuildWelcome gera a mensagem enviada no primeiro contato de cada numero.
func BuildWelcome() string {
	return "Hello and welcome!\n\n" +
		"You can ask me things like:\n" +
		"➡️ 'leave balance for <your name>'\n" +
		"➡️ 'when is the next holiday?'\n" +
		"➡️ Or any question about company policies."
}
