package telegram

import (
	"fmt"

	"github.com/syntoo/nepsebot/internal/models"
)

// Canned replies. The bot speaks Nepali to its audience.
const (
	replyWelcome = "नमस्ते 🙏 Syntoo's Nepse Bot मा स्वागत छ!\n\n" +
		"के को डाटा चाहियो? Symbol पठाउनुहोस् (उदाहरण: SHINE, NABIL, SCB)\n\n" +
		"दैनिक बजार सारांशको लागि /subscribe लेख्नुहोस्।"

	replySubscribed = "✅ दैनिक बजार सारांश सदस्यता सफल।\n/unsubscribe गरेर रद्द गर्न सक्नुहुन्छ।"

	replyUnsubscribed   = "❌ सदस्यता रद्द भयो।"
	replyNotSubscribed  = "पहिले सदस्यता लिएको छैन।"
	replyInvalidSymbol  = "कृपया मान्य Symbol पठाउनुहोस् (जस्तै: SHINE)"
	replyPersistFailure = "माफ गर्नुहोस्, अहिले सदस्यता सुरक्षित गर्न सकिएन। केही बेरमा फेरि प्रयास गर्नुहोस्।"
	replyLookupFailure  = "माफ गर्नुहोस्, अहिले डाटा ल्याउन सकिएन। केही बेरमा फेरि प्रयास गर्नुहोस्।"
)

// formatNotFound builds the reply for a symbol absent from the source tables
func formatNotFound(symbol string) string {
	return fmt.Sprintf("%s को डाटा भेटिएन।", symbol)
}

// FormatStockReply renders a merged stock record as an HTML message
func FormatStockReply(record *models.StockRecord) string {
	return fmt.Sprintf(
		"📊 <b>%s</b> स्टक डाटा:\n\n"+
			"💰 LTP: %g\n"+
			"🔄 Change: %s\n"+
			"🔼 High: %g | 🔽 Low: %g\n"+
			"52W High: %g | 52W Low: %g\n"+
			"🔻 High बाट कमी: %g%%\n"+
			"🔺 Low बाट वृद्धि: %g%%\n\n"+
			"धन्यवाद 🙏",
		record.Symbol,
		record.LTP,
		record.ChangePercent,
		record.DayHigh,
		record.DayLow,
		record.Week52High,
		record.Week52Low,
		record.DownFromHigh,
		record.UpFromLow,
	)
}
