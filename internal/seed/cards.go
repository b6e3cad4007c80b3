package seed

// cardFixture is a curated card before timestamps and ids are assigned.
type cardFixture struct {
	title    string
	category string
	tags     string
	content  string
	lang     string
}

// Curated demo sets, 15 cards per region. These are trusted fixtures and are
// loaded without passing the card safety gate.
var canadaCards = []cardFixture{
	{"Newcomer account opening", "Onboarding", "canada,newcomer,account",
		"I moved to Canada and opened a bank account with my passport and temporary address. The bank explained newcomer programs and limits.", "en"},
	{"SIN not ready", "Onboarding", "sin,canada",
		"I did not have my SIN yet. The bank allowed a basic account and explained that limits would change after SIN update.", "en"},
	{"Temporary address", "Onboarding", "address,canada",
		"I used a temporary address to open my account and updated it later after moving.", "en"},
	{"Mobile banking setup", "Digital", "mobile,2fa",
		"I installed the official app, enabled two-factor authentication, and avoided public Wi-Fi.", "en"},
	{"Forgot password", "Digital", "password,reset",
		"After resetting my password, I waited for the lock to clear and enabled security alerts.", "en"},
	{"Language help", "Digital", "language,branch",
		"Branch staff helped me understand the app features in simple language.", "en"},
	{"Debit vs credit", "Cards", "debit,credit",
		"Debit cards are for spending, credit cards help build credit history.", "en"},
	{"Card declined", "Cards", "declined,limit",
		"My card was declined due to a daily limit which I adjusted in the app.", "en"},
	{"Contactless limits", "Cards", "tap,contactless",
		"I learned tap payments have limits and can be disabled if needed.", "en"},
	{"CRA scam call", "Fraud", "cra,scam",
		"A call claimed to be CRA. I verified through official sources and reported it.", "en"},
	{"Phishing email", "Fraud", "email,phishing",
		"I avoided clicking a suspicious email link and checked my account only via the app.", "en"},
	{"Account frozen", "Security", "frozen,security",
		"My account was frozen after unusual activity and restored after verification.", "en"},
	{"E-transfer delay", "Transfers", "etransfer,delay",
		"An Interac transfer was delayed due to security checks.", "en"},
	{"Overdraft confusion", "Fees", "overdraft,fees",
		"I learned how overdraft fees work and enabled balance alerts.", "en"},
	{"Monthly fees", "Fees", "monthly,fees",
		"I switched to an account with a fee waiver after reviewing conditions.", "en"},
}

var usaCards = []cardFixture{
	{"Opening US account", "Onboarding", "usa,account",
		"I opened a US bank account with ID and address.", "en"},
	{"No SSN yet", "Onboarding", "ssn,itin",
		"Without SSN, the bank explained ITIN-based options.", "en"},
	{"Online vs branch", "Onboarding", "online,branch",
		"Branch opening resolved verification issues faster.", "en"},
	{"App login issue", "Digital", "login,device",
		"A new device required extra verification.", "en"},
	{"Two-factor auth", "Digital", "2fa,security",
		"Two-factor authentication protected my account.", "en"},
	{"Shared device risk", "Digital", "shared,device",
		"Sharing devices increased security risk so I used profiles.", "en"},
	{"Debit declined", "Cards", "debit,declined",
		"Debit was declined due to insufficient funds.", "en"},
	{"First credit card", "Cards", "credit,score",
		"I used a secured card to build credit score.", "en"},
	{"Online shopping", "Cards", "online,shopping",
		"Virtual cards improved online payment safety.", "en"},
	{"IRS scam call", "Fraud", "irs,scam",
		"A call claiming IRS was confirmed as scam.", "en"},
	{"Zelle warning", "Fraud", "zelle,scam",
		"Zelle payments are hard to reverse and should be used carefully.", "en"},
	{"Account locked", "Security", "locked,login",
		"Account locked after failed logins and restored after verification.", "en"},
	{"Overdraft fees", "Fees", "overdraft,fees",
		"Overdraft fees were charged and explained by the bank.", "en"},
	{"Bank statements", "Statements", "pending,posted",
		"I learned the difference between pending and posted transactions.", "en"},
	{"Customer support", "Support", "support,branch",
		"Some issues are better resolved in branch than by phone.", "en"},
}
